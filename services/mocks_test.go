package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindAll(ctx context.Context) ([]models.Subject, error) {
	args := m.Called(ctx)
	subjects, _ := args.Get(0).([]models.Subject)
	return subjects, args.Error(1)
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	args := m.Called(ctx, id)
	subject, _ := args.Get(0).(*models.Subject)
	return subject, args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	args := m.Called(ctx, subject)
	saved, _ := args.Get(0).(*models.Subject)
	return saved, args.Error(1)
}

func (m *mockStore) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(subject string, data []byte) error {
	return m.Called(subject, data).Error(0)
}

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) Index(ctx context.Context, subject models.Subject) error {
	return m.Called(ctx, subject).Error(0)
}

func (m *mockIndexer) Delete(ctx context.Context, idSubject string) error {
	return m.Called(ctx, idSubject).Error(0)
}

func (m *mockIndexer) Search(ctx context.Context, search string) ([]models.Subject, error) {
	args := m.Called(ctx, search)
	subjects, _ := args.Get(0).([]models.Subject)
	return subjects, args.Error(1)
}
