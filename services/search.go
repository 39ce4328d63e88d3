package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CPU-commits/Intranet_BSubjects/db"
	"github.com/CPU-commits/Intranet_BSubjects/funct"
	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/CPU-commits/Intranet_BSubjects/res"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const SUBJECTS_INDEX = "subjects"

var ErrSearchDisabled = errors.New("search is not configured")

type SubjectIndexer interface {
	Index(ctx context.Context, subject models.Subject) error
	Delete(ctx context.Context, idSubject string) error
	Search(ctx context.Context, search string) ([]models.Subject, error)
}

// _id is reserved in the source of elasticsearch documents
type subjectDocument struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
}

type searchHit struct {
	Source subjectDocument `json:"_source"`
}

type searchResponse struct {
	Hits struct {
		Hits []searchHit `json:"hits"`
	} `json:"hits"`
}

type EsSubjectIndexer struct {
	es *elasticsearch.Client
}

func responseError(response *esapi.Response) error {
	return fmt.Errorf("elasticsearch: %s", response.String())
}

func (e *EsSubjectIndexer) Index(ctx context.Context, subject models.Subject) error {
	body, err := json.Marshal(&subjectDocument{
		ID:      subject.ID,
		Subject: subject.Subject,
	})
	if err != nil {
		return err
	}

	response, err := e.es.Index(
		SUBJECTS_INDEX,
		bytes.NewReader(body),
		e.es.Index.WithContext(ctx),
		e.es.Index.WithDocumentID(subject.ID),
		e.es.Index.WithRefresh("true"),
	)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.IsError() {
		return responseError(response)
	}
	return nil
}

func (e *EsSubjectIndexer) Delete(ctx context.Context, idSubject string) error {
	response, err := e.es.Delete(
		SUBJECTS_INDEX,
		idSubject,
		e.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	// Never indexed
	if response.StatusCode == http.StatusNotFound {
		return nil
	}
	if response.IsError() {
		return responseError(response)
	}
	return nil
}

func (e *EsSubjectIndexer) Search(ctx context.Context, search string) ([]models.Subject, error) {
	term, err := json.Marshal(strings.TrimSpace(search) + "*")
	if err != nil {
		return nil, err
	}
	query := db.ConstructQuery(fmt.Sprintf(
		`"simple_query_string": { "query": %s, "fields": ["subject"], "analyzer": "standard" }`,
		term,
	))

	response, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(SUBJECTS_INDEX),
		e.es.Search.WithBody(query),
	)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.IsError() {
		return nil, responseError(response)
	}

	var result searchResponse
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, err
	}
	return funct.Map(result.Hits.Hits, func(hit searchHit) (models.Subject, error) {
		return models.Subject{
			ID:      hit.Source.ID,
			Subject: hit.Source.Subject,
		}, nil
	})
}

func NewEsSubjectIndexer(es *elasticsearch.Client) *EsSubjectIndexer {
	return &EsSubjectIndexer{
		es: es,
	}
}

// DisabledIndexer is used when elasticsearch is not configured
type DisabledIndexer struct{}

func (DisabledIndexer) Index(ctx context.Context, subject models.Subject) error {
	return nil
}

func (DisabledIndexer) Delete(ctx context.Context, idSubject string) error {
	return nil
}

func (DisabledIndexer) Search(ctx context.Context, search string) ([]models.Subject, error) {
	return nil, ErrSearchDisabled
}

func (s *SubjectsService) Search(ctx context.Context, search string) ([]models.Subject, *res.ErrorRes) {
	if strings.TrimSpace(search) == "" {
		return nil, &res.ErrorRes{
			Err:        errors.New("search cannot be empty"),
			StatusCode: http.StatusBadRequest,
		}
	}
	subjects, err := s.indexer.Search(ctx, search)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return subjects, nil
}
