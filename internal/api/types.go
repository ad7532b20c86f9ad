package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dreamware/clipd/internal/clipboard"
)

type CreateRequest struct {
	Content string `json:"content"`
}

type UpdateRequest struct {
	Content string `json:"content"`
}

type ListResponse struct {
	Clips []clipboard.Summary `json:"clips"`
	Count int                 `json:"count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type StatsResponse struct {
	Clips int `json:"clips"`
	Bytes int `json:"bytes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusError reports a non-2xx HTTP response. Callers can inspect Code to
// map statuses like 404 onto domain errors.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %s: %d", e.URL, e.Code)
}

var httpClient = &http.Client{Timeout: 5 * time.Second}

func GetJSON(ctx context.Context, url string, out any) error {
	return doJSON(ctx, http.MethodGet, url, nil, out)
}

func PostJSON(ctx context.Context, url string, body any, out any) error {
	return doJSON(ctx, http.MethodPost, url, body, out)
}

func PutJSON(ctx context.Context, url string, body any, out any) error {
	return doJSON(ctx, http.MethodPut, url, body, out)
}

func Delete(ctx context.Context, url string) error {
	return doJSON(ctx, http.MethodDelete, url, nil, nil)
}

func doJSON(ctx context.Context, method, url string, body any, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &StatusError{URL: url, Code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
