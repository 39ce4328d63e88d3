package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/CPU-commits/Intranet_BSubjects/services"
	"github.com/gin-gonic/gin"
)

type SubjectsController struct {
	subjectsService *services.SubjectsService
}

func abortWithErrorRes(c *gin.Context, err *res.ErrorRes) {
	c.AbortWithStatusJSON(err.StatusCode, &res.Response{
		Success: false,
		Message: err.Err.Error(),
	})
}

// Query
// GetSubjects godoc
// @Summary     Get subjects
// @Description Get all subjects
// @Tags        subjects
// @Produce     json
// @Success     200 {object} res.Response{body=[]models.Subject}
// @Failure     401 {object} res.Response{} "Unauthorized"
// @Failure     503 {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /get_subjects [get]
func (s *SubjectsController) GetSubjects(c *gin.Context) {
	subjects, err := s.subjectsService.GetSubjects(c.Request.Context())
	if err != nil {
		abortWithErrorRes(c, err)
		return
	}
	// Response
	response := make(map[string]interface{})
	response["subjects"] = subjects
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// GetSubject godoc
// @Summary     Get subject
// @Description Get a subject by id
// @Tags        subjects
// @Produce     json
// @Param       idSubject path     string true "Subject ID"
// @Success     200       {object} res.Response{body=models.Subject}
// @Failure     404       {object} res.Response{} "Not found"
// @Failure     503       {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /get_subject/{idSubject} [get]
func (s *SubjectsController) GetSubject(c *gin.Context) {
	idSubject := c.Param("idSubject")

	subject, err := s.subjectsService.GetSubject(c.Request.Context(), idSubject)
	if err != nil {
		abortWithErrorRes(c, err)
		return
	}
	// Response
	response := make(map[string]interface{})
	response["subject"] = subject
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// ExistsSubject godoc
// @Summary     Exists subject
// @Tags        subjects
// @Produce     json
// @Param       idSubject path     string true "Subject ID"
// @Success     200       {object} res.Response{body=bool}
// @Router      /exists/{idSubject} [get]
func (s *SubjectsController) ExistsSubject(c *gin.Context) {
	idSubject := c.Param("idSubject")

	exists, err := s.subjectsService.ExistsSubject(c.Request.Context(), idSubject)
	if err != nil {
		abortWithErrorRes(c, err)
		return
	}
	// Response
	response := make(map[string]interface{})
	response["exists"] = exists
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// CountSubjects godoc
// @Summary     Count subjects
// @Tags        subjects
// @Produce     json
// @Success     200 {object} res.Response{body=int}
// @Router      /count [get]
func (s *SubjectsController) CountSubjects(c *gin.Context) {
	count, err := s.subjectsService.CountSubjects(c.Request.Context())
	if err != nil {
		abortWithErrorRes(c, err)
		return
	}
	// Response
	response := make(map[string]interface{})
	response["total"] = count
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// Search godoc
// @Summary     Search subjects
// @Description Prefix search over subject names
// @Tags        subjects
// @Produce     json
// @Param       q   query    string true "Search"
// @Success     200 {object} res.Response{body=[]models.Subject}
// @Failure     400 {object} res.Response{} "Empty search"
// @Failure     503 {object} res.Response{} "Service Unavailable - ELS Service Unavailable"
// @Router      /search [get]
func (s *SubjectsController) Search(c *gin.Context) {
	subjects, err := s.subjectsService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		abortWithErrorRes(c, err)
		return
	}
	// Response
	response := make(map[string]interface{})
	response["subjects"] = subjects
	c.JSON(http.StatusOK, &res.Response{
		Success: true,
		Data:    response,
	})
}

// ExportSubjects godoc
// @Summary     Export subjects
// @Description Export all subjects to Excel or PDF
// @Tags        subjects
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     application/pdf
// @Param       format query string false "xlsx | pdf"
// @Sucess      200 {file} io.Writer "File"
// @Failure     400 {object} res.Response{} "Unknown format"
// @Failure     503 {object} res.Response{} "Service Unavailable - DB Service Unavailable"
// @Router      /export [get]
func (s *SubjectsController) ExportSubjects(c *gin.Context) {
	format := c.DefaultQuery("format", services.EXPORT_XLSX)

	var buf bytes.Buffer
	if err := s.subjectsService.ExportSubjects(c.Request.Context(), format, &buf); err != nil {
		abortWithErrorRes(c, err)
		return
	}
	c.Header(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=\"subjects.%s\"", format),
	)
	c.Data(http.StatusOK, services.ExportContentType(format), buf.Bytes())
}

func NewSubjectsController(subjectsService *services.SubjectsService) *SubjectsController {
	return &SubjectsController{
		subjectsService: subjectsService,
	}
}
