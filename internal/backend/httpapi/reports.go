package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"taskboard/internal/service"
)

// ReportsClient maps report operations onto the API.
type ReportsClient struct {
	c *Client
}

// CreateDailySummary requests a daily summary for a project.
func (r *ReportsClient) CreateDailySummary(ctx context.Context, projectID int64) (service.Report, error) {
	var out service.Report
	path := fmt.Sprintf("/reports/project/%d/daily-summary", projectID)
	if err := r.c.Do(ctx, http.MethodPost, path, nil, struct{}{}, &out); err != nil {
		return service.Report{}, err
	}
	return out, nil
}

// GetReport returns the current state of a report.
func (r *ReportsClient) GetReport(ctx context.Context, reportID int64) (service.Report, error) {
	var out service.Report
	path := fmt.Sprintf("/reports/%d", reportID)
	if err := r.c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return service.Report{}, err
	}
	return out, nil
}
