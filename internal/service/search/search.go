// Package search maintains the car index in Elasticsearch and runs the
// fuzzy catalog search behind GET /api/cars/search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/carshop/backend/internal/models"
)

func IndexCar(ctx context.Context, es *elasticsearch.Client, index string, car *models.Car) error {
	body, err := json.Marshal(car)
	if err != nil {
		return fmt.Errorf("index car: %w", err)
	}

	res, err := es.Index(
		index,
		bytes.NewReader(body),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(car.ID), 10)),
		es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index car: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index car: %s", res.Status())
	}
	return nil
}

func RemoveCar(ctx context.Context, es *elasticsearch.Client, index string, id uint) error {
	res, err := es.Delete(
		index,
		strconv.FormatUint(uint64(id), 10),
		es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("remove car: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("remove car: %s", res.Status())
	}
	return nil
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Car, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"brand^2", "model"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source models.Car `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	cars := make([]models.Car, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		cars[i] = hit.Source
	}
	return r.Hits.Total.Value, cars, nil
}
