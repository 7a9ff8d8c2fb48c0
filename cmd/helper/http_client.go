package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"driver-auth/internal/mylogger"
)

type HTTPClient struct {
	client  *http.Client
	baseURL string
	logger  mylogger.Logger
}

func NewHTTPClient(baseURL string, logger mylogger.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// DoRequest sends body as JSON and returns the status code and raw response.
func (h *HTTPClient) DoRequest(ctx context.Context, method, path string, body interface{}, headers map[string]string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	h.logger.Debug("response received", "method", method, "path", path, "status", resp.StatusCode)
	return resp.StatusCode, data, nil
}

type RegistrationRequest struct {
	Nama      string `json:"nama"`
	Email     string `json:"email"`
	NoHP      string `json:"no_hp"`
	Password  string `json:"password"`
	Alamat    string `json:"alamat,omitempty"`
	Kendaraan string `json:"kendaraan,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Driver  json.RawMessage `json:"driver"`
}
