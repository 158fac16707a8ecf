package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// apiResponse is the envelope every API endpoint answers with
type apiResponse struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Employee  *employeeRow  `json:"employee"`
	Employees []employeeRow `json:"employees"`
	Task      *taskRow      `json:"task"`
	Tasks     []taskRow     `json:"tasks"`
}

type employeeRow struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	HireDate    string `json:"hireDate"`
}

type taskRow struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	AssignedTo  *employeeRow `json:"assignedTo"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	DueDate     string       `json:"dueDate"`
}

// apiClient talks to a running workforce server
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// do sends body as JSON and decodes the envelope. A response with
// success=false is returned as an error carrying the server message.
func (c *apiClient) do(ctx context.Context, method, path string, body any) (*apiResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if !out.Success {
		if out.Message == "" {
			out.Message = http.StatusText(resp.StatusCode)
		}
		return &out, fmt.Errorf("%s (status %d)", out.Message, resp.StatusCode)
	}
	return &out, nil
}
