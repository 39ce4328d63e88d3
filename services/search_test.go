package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CPU-commits/Intranet_BSubjects/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type esRequest struct {
	method string
	path   string
	body   string
}

func newTestIndexer(t *testing.T, status int, response string) (*EsSubjectIndexer, *[]esRequest) {
	t.Helper()
	requests := &[]esRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*requests = append(*requests, esRequest{r.Method, r.URL.Path, string(body)})

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:  []string{server.URL},
		MaxRetries: 0,
	})
	require.NoError(t, err)
	return NewEsSubjectIndexer(client), requests
}

func TestEsSubjectIndexerIndex(t *testing.T) {
	indexer, requests := newTestIndexer(t, http.StatusCreated, `{"result":"created"}`)

	err := indexer.Index(context.Background(), models.Subject{ID: "s1", Subject: "Math"})
	require.NoError(t, err)
	require.Len(t, *requests, 1)

	request := (*requests)[0]
	assert.Equal(t, http.MethodPut, request.method)
	assert.Equal(t, "/subjects/_doc/s1", request.path)
	assert.JSONEq(t, `{"id":"s1","subject":"Math"}`, request.body)
}

func TestEsSubjectIndexerIndexError(t *testing.T) {
	indexer, _ := newTestIndexer(t, http.StatusBadRequest, `{"error":"bad"}`)

	err := indexer.Index(context.Background(), models.Subject{ID: "s1", Subject: "Math"})
	assert.Error(t, err)
}

func TestEsSubjectIndexerDeleteMissing(t *testing.T) {
	indexer, requests := newTestIndexer(t, http.StatusNotFound, `{"result":"not_found"}`)

	err := indexer.Delete(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodDelete, (*requests)[0].method)
	assert.Equal(t, "/subjects/_doc/s1", (*requests)[0].path)
}

func TestEsSubjectIndexerSearch(t *testing.T) {
	indexer, requests := newTestIndexer(t, http.StatusOK, `{
		"hits": {"hits": [
			{"_id": "s1", "_source": {"id": "s1", "subject": "Math"}},
			{"_id": "s2", "_source": {"id": "s2", "subject": "Mathematics"}}
		]}
	}`)

	subjects, err := indexer.Search(context.Background(), `ma"th`)
	require.NoError(t, err)
	assert.Equal(t, []models.Subject{
		{ID: "s1", Subject: "Math"},
		{ID: "s2", Subject: "Mathematics"},
	}, subjects)

	require.Len(t, *requests, 1)
	request := (*requests)[0]
	assert.True(t, strings.HasPrefix(request.path, "/subjects/_search"))

	var query map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(request.body), &query))
	assert.Contains(t, request.body, `ma\"th*`)
}
