package services

import (
	"context"
	"time"

	"github.com/CPU-commits/Intranet_BSubjects/stack"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const NATS_HANDLER_TIMEOUT = time.Second * 10

type natsReply func(ctx context.Context, data []byte) (interface{}, error)

func (s *SubjectsService) replyGetSubjects(ctx context.Context, data []byte) (interface{}, error) {
	subjects, errRes := s.GetSubjects(ctx)
	if errRes != nil {
		return nil, errRes
	}
	return subjects, nil
}

// Replies null for a missing subject
func (s *SubjectsService) replyGetSubject(ctx context.Context, data []byte) (interface{}, error) {
	var idSubject string
	if err := stack.ExtractData(data, &idSubject); err != nil {
		return nil, err
	}
	subject, err := s.store.FindByID(ctx, idSubject)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectsService) replyGetSubjectsFromIDs(ctx context.Context, data []byte) (interface{}, error) {
	var ids []string
	if err := stack.ExtractData(data, &ids); err != nil {
		return nil, err
	}
	subjects, errRes := s.GetSubjectsFromIDs(ctx, ids)
	if errRes != nil {
		return nil, errRes
	}
	return subjects, nil
}

// reply runs the handler and encodes its NestJS reply, failures included
func (s *SubjectsService) reply(subject string, data []byte, handler natsReply) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), NATS_HANDLER_TIMEOUT)
	defer cancel()

	payload, err := handler(ctx, data)
	if err != nil {
		s.logger.Warn(
			"nats request failed",
			zap.String("nats_subject", subject),
			zap.Error(err),
		)
	}
	return stack.EncodeNestJSReply(data, payload, err)
}

func (s *SubjectsService) respond(m *nats.Msg, handler natsReply) {
	response, err := s.reply(m.Subject, m.Data, handler)
	if err != nil {
		s.logger.Error("failed to encode nats reply", zap.Error(err))
		return
	}
	if err := m.Respond(response); err != nil {
		s.logger.Warn(
			"failed to respond nats request",
			zap.String("nats_subject", m.Subject),
			zap.Error(err),
		)
	}
}

// SubscribeNats answers the subject requests of the other intranet services
func (s *SubjectsService) SubscribeNats(subscriber Subscriber) error {
	replies := map[string]natsReply{
		NATS_GET_SUBJECTS:          s.replyGetSubjects,
		NATS_GET_SUBJECT:           s.replyGetSubject,
		NATS_GET_SUBJECTS_FROM_IDS: s.replyGetSubjectsFromIDs,
	}
	for subject, handler := range replies {
		handler := handler
		if _, err := subscriber.Subscribe(subject, func(m *nats.Msg) {
			s.respond(m, handler)
		}); err != nil {
			return err
		}
	}
	return nil
}
