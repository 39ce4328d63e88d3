package repositories

import (
	"context"
	"errors"

	"github.com/CPU-commits/Intranet_BSubjects/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubjectRepository struct {
	collection models.Collection
}

// FindAll returns every subject in the collection, in no particular order.
// A single undecodable document fails the whole call.
func (s *SubjectRepository) FindAll(ctx context.Context) ([]models.Subject, error) {
	documents, err := s.collection.FindAll(ctx)
	if err != nil {
		return nil, storageError("find subjects", err)
	}

	subjects := make([]models.Subject, 0, len(documents))
	for _, document := range documents {
		subject, err := decodeSubject(document)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *subject)
	}
	return subjects, nil
}

// FindByID returns nil, nil when the subject does not exist
func (s *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	document, err := s.collection.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("find subject", err)
	}
	if document == nil {
		return nil, nil
	}
	return decodeSubject(document)
}

// Save inserts the subject when it has no id, assigning one, and
// otherwise overwrites the record with the same id.
func (s *SubjectRepository) Save(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if subject == nil {
		return nil, errors.New("subject is nil")
	}

	persisted := *subject
	if persisted.ID == "" {
		persisted.ID = primitive.NewObjectID().Hex()
		if err := s.collection.Insert(ctx, persisted); err != nil {
			return nil, storageError("insert subject", err)
		}
		return &persisted, nil
	}
	if err := s.collection.InsertOrReplace(ctx, persisted.ID, persisted); err != nil {
		return nil, storageError("replace subject", err)
	}
	return &persisted, nil
}

// DeleteByID is a no-op for a missing id
func (s *SubjectRepository) DeleteByID(ctx context.Context, id string) error {
	if err := s.collection.DeleteByID(ctx, id); err != nil {
		return storageError("delete subject", err)
	}
	return nil
}

func (s *SubjectRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	exists, err := s.collection.Exists(ctx, id)
	if err != nil {
		return false, storageError("exists subject", err)
	}
	return exists, nil
}

func (s *SubjectRepository) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.Count(ctx)
	if err != nil {
		return 0, storageError("count subjects", err)
	}
	return count, nil
}

func decodeSubject(document bson.Raw) (*models.Subject, error) {
	var subject models.Subject
	if err := bson.Unmarshal(document, &subject); err != nil {
		return nil, serializationError(err)
	}
	return &subject, nil
}

func NewSubjectRepository(collection models.Collection) *SubjectRepository {
	return &SubjectRepository{
		collection: collection,
	}
}
