package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/project/catalog/pkg/logger"
	"go.uber.org/zap"
)

// defaultPageSize stays well below the default index.max_result_window of 10000.
const defaultPageSize = 1000

var (
	matchAllQuery = json.RawMessage(`{"match_all":{}}`)
	// Documents are paged by their own id field; sorting on _id is disabled in recent clusters.
	byRecordID = json.RawMessage(`[{"id":{"order":"asc","unmapped_type":"long"}}]`)
)

var (
	_ DurableBackend = (*ElasticBackend)(nil)
	_ Pinger         = (*ElasticBackend)(nil)
)

// ElasticBackend stores each record as a document of one index, keyed by its id.
// Writes refresh the index so that a following ReadAll observes them.
type ElasticBackend struct {
	logger   *zap.Logger
	client   *elasticsearch.Client
	index    string
	pageSize int
}

type (
	getResponse struct {
		Source json.RawMessage `json:"_source"`
	}

	searchRequest struct {
		Source      bool              `json:"_source"`
		Query       json.RawMessage   `json:"query"`
		Sort        json.RawMessage   `json:"sort"`
		SearchAfter []json.RawMessage `json:"search_after,omitempty"`
	}

	searchHit struct {
		ID     string            `json:"_id"`
		Source json.RawMessage   `json:"_source"`
		Sort   []json.RawMessage `json:"sort"`
	}

	searchResponse struct {
		Hits struct {
			Hits []searchHit `json:"hits"`
		} `json:"hits"`
	}
)

func NewElasticBackend(l *zap.Logger, client *elasticsearch.Client, index string) (*ElasticBackend, error) {
	if index == "" {
		return nil, ErrEmptyLocation
	}
	return &ElasticBackend{
		logger:   l,
		client:   client,
		index:    index,
		pageSize: defaultPageSize,
	}, nil
}

func (e *ElasticBackend) Read(ctx context.Context, id int64) ([]byte, error) {
	res, err := e.client.Get(e.index, formatID(id), e.client.Get.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrRecordNotFound
	}
	if res.IsError() {
		return nil, responseError("get", res)
	}

	var doc getResponse
	if err = json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("elasticsearch get: can not decode response: %w", err)
	}
	return doc.Source, nil
}

func (e *ElasticBackend) ReadAll(ctx context.Context) ([][]byte, error) {
	var result [][]byte
	err := e.scan(ctx, true, func(hit searchHit) {
		result = append(result, hit.Source)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *ElasticBackend) Write(ctx context.Context, id int64, data []byte) error {
	res, err := e.client.Index(
		e.index,
		bytes.NewReader(data),
		e.client.Index.WithContext(ctx),
		e.client.Index.WithDocumentID(formatID(id)),
		e.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

func (e *ElasticBackend) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := e.client.Delete(
		e.index,
		formatID(id),
		e.client.Delete.WithContext(ctx),
		e.client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.IsError() {
		return false, responseError("delete", res)
	}
	return true, nil
}

func (e *ElasticBackend) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := e.scan(ctx, false, func(hit searchHit) {
		keys = append(keys, hit.ID)
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (e *ElasticBackend) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("ping", res)
	}
	return nil
}

// scan walks the whole index in pages ordered by record id, continuing each page
// with search_after from the sort values of the previous page's last hit.
func (e *ElasticBackend) scan(ctx context.Context, withSource bool, visit func(hit searchHit)) error {
	req := searchRequest{Source: withSource, Query: matchAllQuery, Sort: byRecordID}
	for {
		hits, err := e.search(ctx, req)
		if err != nil {
			return err
		}
		for _, hit := range hits {
			visit(hit)
		}
		if len(hits) < e.pageSize {
			return nil
		}

		last := hits[len(hits)-1]
		if len(last.Sort) == 0 {
			return fmt.Errorf("elasticsearch search: hit %s has no sort values", last.ID)
		}
		req.SearchAfter = last.Sort
	}
}

// search returns no hits when the index has not been created yet.
func (e *ElasticBackend) search(ctx context.Context, req searchRequest) ([]searchHit, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: can not encode request: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
		e.client.Search.WithSize(e.pageSize),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		logger.MakeDebug(e.logger, "index does not exist yet", zap.String("index", e.index))
		return nil, nil
	}
	if res.IsError() {
		return nil, responseError("search", res)
	}

	var result searchResponse
	if err = json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("elasticsearch search: can not decode response: %w", err)
	}
	return result.Hits.Hits, nil
}

func responseError(op string, res *esapi.Response) error {
	return fmt.Errorf("elasticsearch %s: %s", op, res.Status())
}
