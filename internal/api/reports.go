package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"centavo/internal/report"
)

func (c *Client) ListAlerts(ctx context.Context, filter report.AlertFilter) ([]report.Alert, error) {
	data, err := c.do(ctx, http.MethodGet, "/reports/alerts/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[report.Alert](data)
}

// ListUnreadAlerts hits the server-filtered unread variant. Its envelope uses
// an "alerts" key instead of "results"; a bare array is accepted too.
func (c *Client) ListUnreadAlerts(ctx context.Context) ([]report.Alert, error) {
	data, err := c.do(ctx, http.MethodGet, "/reports/alerts/unread/", nil, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeList[report.Alert](trimmed)
	}

	var envelope struct {
		Alerts []report.Alert `json:"alerts"`
	}

	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decoding unread alerts: %w", err)
	}

	return envelope.Alerts, nil
}

func (c *Client) CreateAlert(ctx context.Context, params report.AlertParams) (*report.Alert, error) {
	data, err := c.do(ctx, http.MethodPost, "/reports/alerts/", nil, params)
	if err != nil {
		return nil, err
	}

	return decodeOne[report.Alert](data)
}

func (c *Client) MarkAlertRead(ctx context.Context, id uuid.UUID) (*report.Alert, error) {
	body := struct {
		IsRead bool `json:"is_read"`
	}{IsRead: true}

	data, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/reports/alerts/%s/", id), nil, body)
	if err != nil {
		return nil, err
	}

	return decodeOne[report.Alert](data)
}

func (c *Client) MarkAllAlertsRead(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/reports/alerts/mark-all-read/", nil, nil)

	return err
}

func (c *Client) Summary(ctx context.Context, filter report.PeriodFilter) (*report.Summary, error) {
	data, err := c.do(ctx, http.MethodGet, "/reports/summary/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeOne[report.Summary](data)
}

func (c *Client) Breakdown(ctx context.Context, filter report.PeriodFilter) ([]report.BreakdownItem, error) {
	data, err := c.do(ctx, http.MethodGet, "/reports/breakdown/", filter.Query(), nil)
	if err != nil {
		return nil, err
	}

	return decodeList[report.BreakdownItem](data)
}

func (c *Client) BudgetStatus(ctx context.Context) ([]report.BudgetStatusItem, error) {
	data, err := c.do(ctx, http.MethodGet, "/reports/budget-status/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[report.BudgetStatusItem](data)
}

func (c *Client) MonthlyReport(ctx context.Context, year int, month time.Month) (*report.MonthlyReport, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reports/monthly/%d/%d/", year, int(month)), nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeOne[report.MonthlyReport](data)
}
