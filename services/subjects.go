package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CPU-commits/Intranet_BSubjects/forms"
	"github.com/CPU-commits/Intranet_BSubjects/funct"
	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/CPU-commits/Intranet_BSubjects/repositories"
	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/CPU-commits/Intranet_BSubjects/utils"
	"go.uber.org/zap"
)

const MAX_CONCURRENT_LOOKUPS = 10

type SubjectEvent struct {
	ID      string          `json:"_id"`
	Subject *models.Subject `json:"subject,omitempty"`
}

type SubjectsService struct {
	store       SubjectStore
	publisher   Publisher
	indexer     SubjectIndexer
	logger      *zap.Logger
	collegeName string
}

func storeErrorRes(err error) *res.ErrorRes {
	statusCode := http.StatusServiceUnavailable
	if errors.Is(err, repositories.ErrSerialization) {
		statusCode = http.StatusInternalServerError
	}
	return &res.ErrorRes{
		Err:        err,
		StatusCode: statusCode,
	}
}

func notFoundErrorRes(id string) *res.ErrorRes {
	return &res.ErrorRes{
		Err:        fmt.Errorf("subject %s not found", id),
		StatusCode: http.StatusNotFound,
	}
}

func subjectName(form *forms.SubjectForm) (string, *res.ErrorRes) {
	if form == nil {
		return "", &res.ErrorRes{
			Err:        errors.New("subject is required"),
			StatusCode: http.StatusBadRequest,
		}
	}
	name := strings.TrimSpace(form.Subject)
	if name == "" {
		return "", &res.ErrorRes{
			Err:        errors.New("subject name cannot be blank"),
			StatusCode: http.StatusBadRequest,
		}
	}
	return name, nil
}

func (s *SubjectsService) GetSubjects(ctx context.Context) ([]models.Subject, *res.ErrorRes) {
	subjects, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, storeErrorRes(err)
	}
	return subjects, nil
}

func (s *SubjectsService) GetSubject(ctx context.Context, idSubject string) (*models.Subject, *res.ErrorRes) {
	subject, err := s.store.FindByID(ctx, idSubject)
	if err != nil {
		return nil, storeErrorRes(err)
	}
	if subject == nil {
		return nil, notFoundErrorRes(idSubject)
	}
	return subject, nil
}

func (s *SubjectsService) ExistsSubject(ctx context.Context, idSubject string) (bool, *res.ErrorRes) {
	exists, err := s.store.ExistsByID(ctx, idSubject)
	if err != nil {
		return false, storeErrorRes(err)
	}
	return exists, nil
}

func (s *SubjectsService) CountSubjects(ctx context.Context) (int64, *res.ErrorRes) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, storeErrorRes(err)
	}
	return count, nil
}

// GetSubjectsFromIDs keeps the order of ids and skips the missing ones
func (s *SubjectsService) GetSubjectsFromIDs(
	ctx context.Context,
	ids []string,
) ([]models.Subject, *res.ErrorRes) {
	found := make([]*models.Subject, len(ids))

	err := utils.Concurrency(ctx, MAX_CONCURRENT_LOOKUPS, len(ids), func(ctx context.Context, index int) error {
		subject, err := s.store.FindByID(ctx, ids[index])
		if err != nil {
			return err
		}
		found[index] = subject
		return nil
	})
	if err != nil {
		return nil, storeErrorRes(err)
	}

	present := funct.Filter(found, func(subject *models.Subject) bool {
		return subject != nil
	})
	subjects := make([]models.Subject, 0, len(present))
	for _, subject := range present {
		subjects = append(subjects, *subject)
	}
	return subjects, nil
}

func (s *SubjectsService) NewSubject(
	ctx context.Context,
	subjectData *forms.SubjectForm,
) (*models.Subject, *res.ErrorRes) {
	name, errRes := subjectName(subjectData)
	if errRes != nil {
		return nil, errRes
	}

	subject, err := s.store.Save(ctx, &models.Subject{
		Subject: name,
	})
	if err != nil {
		return nil, storeErrorRes(err)
	}
	s.afterSave(ctx, subject)
	return subject, nil
}

func (s *SubjectsService) UpdateSubject(
	ctx context.Context,
	idSubject string,
	subjectData *forms.SubjectForm,
) (*models.Subject, *res.ErrorRes) {
	name, errRes := subjectName(subjectData)
	if errRes != nil {
		return nil, errRes
	}
	current, errRes := s.GetSubject(ctx, idSubject)
	if errRes != nil {
		return nil, errRes
	}

	subject, err := s.store.Save(ctx, &models.Subject{
		ID:      current.ID,
		Subject: name,
		V:       current.V,
	})
	if err != nil {
		return nil, storeErrorRes(err)
	}
	s.afterSave(ctx, subject)
	return subject, nil
}

// DeleteSubject succeeds for a missing subject
func (s *SubjectsService) DeleteSubject(ctx context.Context, idSubject string) *res.ErrorRes {
	if err := s.store.DeleteByID(ctx, idSubject); err != nil {
		return storeErrorRes(err)
	}
	s.afterDelete(ctx, idSubject)
	return nil
}

// Mutations are committed once the store accepts them. Events and the
// search index are best effort and only logged on failure.
func (s *SubjectsService) afterSave(ctx context.Context, subject *models.Subject) {
	s.publish(NATS_SUBJECT_SAVED, &SubjectEvent{
		ID:      subject.ID,
		Subject: subject,
	})
	if err := s.indexer.Index(ctx, *subject); err != nil {
		s.logger.Warn(
			"failed to index subject",
			zap.String("subject_id", subject.ID),
			zap.Error(err),
		)
	}
}

func (s *SubjectsService) afterDelete(ctx context.Context, idSubject string) {
	s.publish(NATS_SUBJECT_DELETED, &SubjectEvent{
		ID: idSubject,
	})
	if err := s.indexer.Delete(ctx, idSubject); err != nil {
		s.logger.Warn(
			"failed to remove subject from index",
			zap.String("subject_id", idSubject),
			zap.Error(err),
		)
	}
}

func (s *SubjectsService) publish(subject string, event *SubjectEvent) {
	if s.publisher == nil {
		return
	}
	data, err := formatRequestToNestjsNats(event)
	if err == nil {
		err = s.publisher.Publish(subject, data)
	}
	if err != nil {
		s.logger.Warn(
			"failed to publish subject event",
			zap.String("nats_subject", subject),
			zap.String("subject_id", event.ID),
			zap.Error(err),
		)
	}
}

// publisher may be nil when NATS is not configured
func NewSubjectsService(
	store SubjectStore,
	publisher Publisher,
	indexer SubjectIndexer,
	logger *zap.Logger,
	collegeName string,
) *SubjectsService {
	if indexer == nil {
		indexer = DisabledIndexer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectsService{
		store:       store,
		publisher:   publisher,
		indexer:     indexer,
		logger:      logger,
		collegeName: collegeName,
	}
}
