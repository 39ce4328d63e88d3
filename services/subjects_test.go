package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/CPU-commits/Intranet_BSubjects/forms"
	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/CPU-commits/Intranet_BSubjects/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var errUnavailable = errors.Join(repositories.ErrStorageUnavailable, errors.New("connection refused"))

type eventEnvelope struct {
	ID   string       `json:"id"`
	Data SubjectEvent `json:"data"`
}

func newTestService() (*SubjectsService, *mockStore, *mockPublisher, *mockIndexer) {
	store := new(mockStore)
	publisher := new(mockPublisher)
	indexer := new(mockIndexer)
	return NewSubjectsService(store, publisher, indexer, nil, "Colegio"), store, publisher, indexer
}

func eventFor(id string) interface{} {
	return mock.MatchedBy(func(data []byte) bool {
		var envelope eventEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return false
		}
		return envelope.ID != "" && envelope.Data.ID == id
	})
}

func TestGetSubjects(t *testing.T) {
	service, store, _, _ := newTestService()
	subjects := []models.Subject{{ID: "s1", Subject: "Math"}}
	store.On("FindAll", mock.Anything).Return(subjects, nil)

	result, errRes := service.GetSubjects(context.Background())
	require.Nil(t, errRes)
	assert.Equal(t, subjects, result)
}

func TestGetSubjectsStoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		statusCode int
	}{
		{"storage unavailable", errUnavailable, http.StatusServiceUnavailable},
		{"serialization", errors.Join(repositories.ErrSerialization, errors.New("bad")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store, _, _ := newTestService()
			store.On("FindAll", mock.Anything).Return(nil, tt.err)

			_, errRes := service.GetSubjects(context.Background())
			require.NotNil(t, errRes)
			assert.Equal(t, tt.statusCode, errRes.StatusCode)
			assert.ErrorIs(t, errRes, tt.err)
		})
	}
}

func TestGetSubjectNotFound(t *testing.T) {
	service, store, _, _ := newTestService()
	store.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	subject, errRes := service.GetSubject(context.Background(), "missing")
	assert.Nil(t, subject)
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusNotFound, errRes.StatusCode)
}

func TestExistsAndCount(t *testing.T) {
	service, store, _, _ := newTestService()
	store.On("ExistsByID", mock.Anything, "s1").Return(true, nil)
	store.On("Count", mock.Anything).Return(int64(4), nil)

	exists, errRes := service.ExistsSubject(context.Background(), "s1")
	require.Nil(t, errRes)
	assert.True(t, exists)

	count, errRes := service.CountSubjects(context.Background())
	require.Nil(t, errRes)
	assert.Equal(t, int64(4), count)
}

func TestNewSubject(t *testing.T) {
	service, store, publisher, indexer := newTestService()
	saved := &models.Subject{ID: "s1", Subject: "Math"}
	store.On("Save", mock.Anything, mock.MatchedBy(func(subject *models.Subject) bool {
		return subject.ID == "" && subject.Subject == "Math"
	})).Return(saved, nil)
	publisher.On("Publish", NATS_SUBJECT_SAVED, eventFor("s1")).Return(nil)
	indexer.On("Index", mock.Anything, *saved).Return(nil)

	subject, errRes := service.NewSubject(context.Background(), &forms.SubjectForm{Subject: "  Math "})
	require.Nil(t, errRes)
	assert.Equal(t, saved, subject)

	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
	indexer.AssertExpectations(t)
}

func TestNewSubjectBlank(t *testing.T) {
	service, store, _, _ := newTestService()

	_, errRes := service.NewSubject(context.Background(), &forms.SubjectForm{Subject: "   "})
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusBadRequest, errRes.StatusCode)

	_, errRes = service.NewSubject(context.Background(), nil)
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusBadRequest, errRes.StatusCode)

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNewSubjectSideEffectsBestEffort(t *testing.T) {
	service, store, publisher, indexer := newTestService()
	saved := &models.Subject{ID: "s1", Subject: "Math"}
	store.On("Save", mock.Anything, mock.Anything).Return(saved, nil)
	publisher.On("Publish", NATS_SUBJECT_SAVED, mock.Anything).Return(errors.New("nats down"))
	indexer.On("Index", mock.Anything, mock.Anything).Return(errors.New("es down"))

	subject, errRes := service.NewSubject(context.Background(), &forms.SubjectForm{Subject: "Math"})
	require.Nil(t, errRes)
	assert.Equal(t, saved, subject)
}

func TestNewSubjectWithoutPublisher(t *testing.T) {
	store := new(mockStore)
	service := NewSubjectsService(store, nil, nil, nil, "")
	saved := &models.Subject{ID: "s1", Subject: "Math"}
	store.On("Save", mock.Anything, mock.Anything).Return(saved, nil)

	subject, errRes := service.NewSubject(context.Background(), &forms.SubjectForm{Subject: "Math"})
	require.Nil(t, errRes)
	assert.Equal(t, saved, subject)
}

func TestNewSubjectStorageUnavailable(t *testing.T) {
	service, store, publisher, indexer := newTestService()
	store.On("Save", mock.Anything, mock.Anything).Return(nil, errUnavailable)

	_, errRes := service.NewSubject(context.Background(), &forms.SubjectForm{Subject: "Math"})
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusServiceUnavailable, errRes.StatusCode)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	indexer.AssertNotCalled(t, "Index", mock.Anything, mock.Anything)
}

func TestUpdateSubject(t *testing.T) {
	service, store, publisher, indexer := newTestService()
	store.On("FindByID", mock.Anything, "s1").Return(&models.Subject{ID: "s1", Subject: "Math", V: 3}, nil)
	updated := &models.Subject{ID: "s1", Subject: "Mathematics", V: 3}
	store.On("Save", mock.Anything, updated).Return(updated, nil)
	publisher.On("Publish", NATS_SUBJECT_SAVED, eventFor("s1")).Return(nil)
	indexer.On("Index", mock.Anything, *updated).Return(nil)

	subject, errRes := service.UpdateSubject(context.Background(), "s1", &forms.SubjectForm{Subject: "Mathematics"})
	require.Nil(t, errRes)
	assert.Equal(t, updated, subject)
	store.AssertExpectations(t)
}

func TestUpdateSubjectNotFound(t *testing.T) {
	service, store, _, _ := newTestService()
	store.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	_, errRes := service.UpdateSubject(context.Background(), "missing", &forms.SubjectForm{Subject: "Math"})
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusNotFound, errRes.StatusCode)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteSubject(t *testing.T) {
	service, store, publisher, indexer := newTestService()
	store.On("DeleteByID", mock.Anything, "s1").Return(nil)
	publisher.On("Publish", NATS_SUBJECT_DELETED, eventFor("s1")).Return(nil)
	indexer.On("Delete", mock.Anything, "s1").Return(nil)

	errRes := service.DeleteSubject(context.Background(), "s1")
	require.Nil(t, errRes)
	publisher.AssertExpectations(t)
	indexer.AssertExpectations(t)
}

func TestDeleteSubjectStorageUnavailable(t *testing.T) {
	service, store, publisher, _ := newTestService()
	store.On("DeleteByID", mock.Anything, "s1").Return(errUnavailable)

	errRes := service.DeleteSubject(context.Background(), "s1")
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusServiceUnavailable, errRes.StatusCode)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestGetSubjectsFromIDs(t *testing.T) {
	service, store, _, _ := newTestService()
	store.On("FindByID", mock.Anything, "s1").Return(&models.Subject{ID: "s1", Subject: "Math"}, nil)
	store.On("FindByID", mock.Anything, "missing").Return(nil, nil)
	store.On("FindByID", mock.Anything, "s2").Return(&models.Subject{ID: "s2", Subject: "History"}, nil)

	subjects, errRes := service.GetSubjectsFromIDs(context.Background(), []string{"s1", "missing", "s2"})
	require.Nil(t, errRes)
	assert.Equal(t, []models.Subject{
		{ID: "s1", Subject: "Math"},
		{ID: "s2", Subject: "History"},
	}, subjects)
}

func TestGetSubjectsFromIDsError(t *testing.T) {
	service, store, _, _ := newTestService()
	store.On("FindByID", mock.Anything, mock.Anything).Return(nil, errUnavailable)

	_, errRes := service.GetSubjectsFromIDs(context.Background(), []string{"s1", "s2"})
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusServiceUnavailable, errRes.StatusCode)
}

func TestSearch(t *testing.T) {
	service, _, _, indexer := newTestService()
	indexer.On("Search", mock.Anything, "mat").Return([]models.Subject{{ID: "s1", Subject: "Math"}}, nil)

	subjects, errRes := service.Search(context.Background(), "mat")
	require.Nil(t, errRes)
	assert.Len(t, subjects, 1)

	_, errRes = service.Search(context.Background(), " ")
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusBadRequest, errRes.StatusCode)
}

func TestSearchDisabled(t *testing.T) {
	service := NewSubjectsService(new(mockStore), nil, nil, nil, "")

	_, errRes := service.Search(context.Background(), "mat")
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusServiceUnavailable, errRes.StatusCode)
	assert.ErrorIs(t, errRes, ErrSearchDisabled)
}

func TestExportSubjectsExcel(t *testing.T) {
	service, store, _, _ := newTestService()
	store.On("FindAll", mock.Anything).Return([]models.Subject{
		{ID: "s1", Subject: "Math"},
		{ID: "s2", Subject: "Lenguaje y Comunicación"},
	}, nil)

	var buf bytes.Buffer
	errRes := service.ExportSubjects(context.Background(), EXPORT_XLSX, &buf)
	require.Nil(t, errRes)

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	header, err := file.GetCellValue(SUBJECTS_SHEET, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Materia", header)
	value, err := file.GetCellValue(SUBJECTS_SHEET, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Lenguaje y Comunicación", value)
}

func TestExportSubjectsPdf(t *testing.T) {
	service, store, _, _ := newTestService()
	store.On("FindAll", mock.Anything).Return([]models.Subject{{ID: "s1", Subject: "Música"}}, nil)

	var buf bytes.Buffer
	errRes := service.ExportSubjects(context.Background(), EXPORT_PDF, &buf)
	require.Nil(t, errRes)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestExportSubjectsUnknownFormat(t *testing.T) {
	service, store, _, _ := newTestService()

	errRes := service.ExportSubjects(context.Background(), "csv", &bytes.Buffer{})
	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusBadRequest, errRes.StatusCode)
	store.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestExportContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ExportContentType(EXPORT_PDF))
	assert.Contains(t, ExportContentType(EXPORT_XLSX), "spreadsheetml")
}
