package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/code-sage/internal/core"
)

// apiClient is a thin HTTP client for the code-sage API.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient() *apiClient {
	base := viper.GetString("SERVER")
	if base == "" {
		base = serverAddr
	}
	return &apiClient{
		base: base,
		http: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *apiClient) uploadFile(path string) (*core.Review, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.http.Post(c.base+"/review/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var review core.Review
	if err := decodeResponse(resp, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *apiClient) getReview(id int64) (*core.Review, error) {
	resp, err := c.http.Get(fmt.Sprintf("%s/reviews/%d", c.base, id))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var review core.Review
	if err := decodeResponse(resp, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *apiClient) listReviews(limit, offset int) ([]*core.Review, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	resp, err := c.http.Get(c.base + "/reviews?" + query.Encode())
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var reviews []*core.Review
	if err := decodeResponse(resp, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *apiClient) deleteReview(id int64) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/reviews/%d", c.base, id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result map[string]string
	return decodeResponse(resp, &result)
}

func (c *apiClient) getStats() (*core.Stats, error) {
	resp, err := c.http.Get(c.base + "/stats")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var stats core.Stats
	if err := decodeResponse(resp, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func decodeResponse(resp *http.Response, v any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
