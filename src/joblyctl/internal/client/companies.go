package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// CompanyFilter holds the optional list filters. Nil fields are not sent.
type CompanyFilter struct {
	Name         string
	MinEmployees *int
	MaxEmployees *int
}

// QueryString builds a URL query string from the filter
func (f *CompanyFilter) QueryString() string {
	if f == nil {
		return ""
	}
	q := url.Values{}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.MinEmployees != nil {
		q.Set("minEmployees", strconv.Itoa(*f.MinEmployees))
	}
	if f.MaxEmployees != nil {
		q.Set("maxEmployees", strconv.Itoa(*f.MaxEmployees))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListCompanies returns the companies matching filter
func (c *Client) ListCompanies(ctx context.Context, filter *CompanyFilter) ([]Company, error) {
	var resp struct {
		Companies []Company `json:"companies"`
	}
	if err := c.Get(ctx, "/companies"+filter.QueryString(), &resp); err != nil {
		return nil, err
	}
	return resp.Companies, nil
}

// GetCompany returns a company with its jobs
func (c *Client) GetCompany(ctx context.Context, handle string) (*Company, error) {
	var resp struct {
		Company Company `json:"company"`
	}
	if err := c.Get(ctx, "/companies/"+url.PathEscape(handle), &resp); err != nil {
		return nil, err
	}
	return &resp.Company, nil
}

// CreateCompany creates a company
func (c *Client) CreateCompany(ctx context.Context, nc NewCompany) (*Company, error) {
	var resp struct {
		Company Company `json:"company"`
	}
	if err := c.Post(ctx, "/companies", nc, &resp); err != nil {
		return nil, err
	}
	return &resp.Company, nil
}

// UpdateCompany applies a partial update. A nil value in fields clears the
// column.
func (c *Client) UpdateCompany(ctx context.Context, handle string, fields map[string]interface{}) (*Company, error) {
	var resp struct {
		Company Company `json:"company"`
	}
	if err := c.Patch(ctx, "/companies/"+url.PathEscape(handle), fields, &resp); err != nil {
		return nil, err
	}
	return &resp.Company, nil
}

// DeleteCompany deletes a company
func (c *Client) DeleteCompany(ctx context.Context, handle string) error {
	return c.Delete(ctx, "/companies/"+url.PathEscape(handle), nil)
}

// UploadLogo sends an image as the company logo
func (c *Client) UploadLogo(ctx context.Context, handle, filename string, r io.Reader) (*Company, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("logo", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.BaseURL+"/companies/"+url.PathEscape(handle)+"/logo", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var resp struct {
		Company Company `json:"company"`
	}
	if err := c.Do(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Company, nil
}

// DownloadLogo copies the company logo into w and returns its content type
func (c *Client) DownloadLogo(ctx context.Context, handle string, w io.Writer) (string, error) {
	resp, err := c.RawGet(ctx, "/companies/"+url.PathEscape(handle)+"/logo")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}
	return resp.Header.Get("Content-Type"), nil
}
