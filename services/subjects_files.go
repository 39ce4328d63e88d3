package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	EXPORT_XLSX = "xlsx"
	EXPORT_PDF  = "pdf"
)

const SUBJECTS_SHEET = "Materias"

func ExportContentType(format string) string {
	if format == EXPORT_PDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (s *SubjectsService) ExportSubjects(ctx context.Context, format string, w io.Writer) *res.ErrorRes {
	if format == "" {
		format = EXPORT_XLSX
	}
	if format != EXPORT_XLSX && format != EXPORT_PDF {
		return &res.ErrorRes{
			Err:        fmt.Errorf("unknown export format %q", format),
			StatusCode: http.StatusBadRequest,
		}
	}
	subjects, errRes := s.GetSubjects(ctx)
	if errRes != nil {
		return errRes
	}

	var err error
	if format == EXPORT_PDF {
		err = s.exportPdf(subjects, w)
	} else {
		err = exportExcel(subjects, w)
	}
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return nil
}

func exportExcel(subjects []models.Subject, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", SUBJECTS_SHEET)
	// Set columns
	file.SetCellValue(SUBJECTS_SHEET, "A1", "ID")
	file.SetCellValue(SUBJECTS_SHEET, "B1", "Materia")
	// Set values
	for i, subject := range subjects {
		file.SetCellValue(SUBJECTS_SHEET, fmt.Sprintf("A%v", i+2), subject.ID)
		file.SetCellValue(SUBJECTS_SHEET, fmt.Sprintf("B%v", i+2), subject.Subject)
	}
	return file.Write(w)
}

func (s *SubjectsService) exportPdf(subjects []models.Subject, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Times", "", 10)
	pdf.AddPage()
	// Header
	pdf.Text(5, 10, tr(s.collegeName))
	pdf.Text(5, 15, tr("Materias"))
	_, height := pdf.GetPageSize()
	// Footer
	date := fmt.Sprintf("Emitido el %s", time.Now().Format("2006-01-02"))
	pdf.Text(5, height-5, date)
	// Table
	pdf.SetXY(5, 25)
	pdf.CellFormat(60, 5, "ID", "1", 0, "", false, 0, "")
	pdf.CellFormat(100, 5, "Materia", "1", 1, "", false, 0, "")
	for _, subject := range subjects {
		pdf.SetX(5)
		pdf.CellFormat(60, 5, subject.ID, "1", 0, "", false, 0, "")
		pdf.CellFormat(100, 5, tr(subject.Subject), "1", 1, "", false, 0, "")
	}

	return pdf.Output(w)
}
