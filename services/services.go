package services

import (
	"context"
	"encoding/json"

	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Nats subjects
const (
	NATS_GET_SUBJECTS          = "get_subjects"
	NATS_GET_SUBJECT           = "get_subject"
	NATS_GET_SUBJECTS_FROM_IDS = "get_subjects_from_ids"
	NATS_SUBJECT_SAVED         = "subjects/saved"
	NATS_SUBJECT_DELETED       = "subjects/deleted"
)

// SubjectStore is the subject store access the service works on
type SubjectStore interface {
	FindAll(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Save(ctx context.Context, subject *models.Subject) (*models.Subject, error)
	DeleteByID(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type Publisher interface {
	Publish(subject string, data []byte) error
}

type Subscriber interface {
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
}

func formatRequestToNestjsNats(data interface{}) ([]byte, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	request := make(map[string]interface{})
	request["id"] = id.String()
	if data != nil {
		request["data"] = data
	}
	jsonMarshal, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	return jsonMarshal, nil
}
