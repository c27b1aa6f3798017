package client

import (
	"context"
	"net/url"
	"strconv"
)

// JobFilter holds the optional job list filters
type JobFilter struct {
	Title     string
	MinSalary *int
	HasEquity bool
}

// QueryString builds a URL query string from the filter
func (f *JobFilter) QueryString() string {
	if f == nil {
		return ""
	}
	q := url.Values{}
	if f.Title != "" {
		q.Set("title", f.Title)
	}
	if f.MinSalary != nil {
		q.Set("minSalary", strconv.Itoa(*f.MinSalary))
	}
	if f.HasEquity {
		q.Set("hasEquity", "true")
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListJobs returns the jobs matching filter
func (c *Client) ListJobs(ctx context.Context, filter *JobFilter) ([]Job, error) {
	var resp struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.Get(ctx, "/jobs"+filter.QueryString(), &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// GetJob returns the job with the given title and its company
func (c *Client) GetJob(ctx context.Context, title string) (*JobDetail, error) {
	var resp struct {
		Job JobDetail `json:"job"`
	}
	if err := c.Get(ctx, "/jobs/"+url.PathEscape(title), &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// CreateJob creates a job
func (c *Client) CreateJob(ctx context.Context, nj NewJob) (*Job, error) {
	var resp struct {
		Job Job `json:"job"`
	}
	if err := c.Post(ctx, "/jobs", nj, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// UpdateJob applies a partial update to a job
func (c *Client) UpdateJob(ctx context.Context, id int64, fields map[string]interface{}) (*Job, error) {
	var resp struct {
		Job Job `json:"job"`
	}
	if err := c.Patch(ctx, "/jobs/"+strconv.FormatInt(id, 10), fields, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// DeleteJob deletes a job
func (c *Client) DeleteJob(ctx context.Context, id int64) error {
	return c.Delete(ctx, "/jobs/"+strconv.FormatInt(id, 10), nil)
}
