package ratesapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"fxrates-console/internal/application"
	"fxrates-console/internal/domain"
	"fxrates-console/internal/infrastructure/httpx"
)

const (
	supportedCurrenciesPath = "/api/v1/rates/supported-currencies"
	scheduleUpdatePath      = "/api/v1/rates/updates"
)

// Client talks to the remote fx-rates service over its JSON API. It is a
// stateless adapter: all tracking state lives in the application layer.
type Client struct {
	api *httpx.Client
}

var _ application.RateService = (*Client)(nil)

func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{api: &httpx.Client{HTTP: httpClient, BaseURL: baseURL}}
}

type supportedCurrenciesResponse struct {
	Codes []string `json:"codes"`
}

type rateResponse struct {
	Base      string    `json:"base"`
	Quote     string    `json:"quote"`
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type scheduleUpdateRequest struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

type scheduleUpdateResponse struct {
	UpdateID string `json:"update_id"`
}

type updateStatusResponse struct {
	UpdateID  string     `json:"update_id"`
	Base      string     `json:"base"`
	Quote     string     `json:"quote"`
	Status    string     `json:"status"`
	Value     *float64   `json:"value,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (c *Client) SupportedCurrencies(ctx context.Context) ([]string, error) {
	var resp supportedCurrenciesResponse
	if err := c.api.DoJSON(ctx, http.MethodGet, supportedCurrenciesPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Codes, nil
}

func (c *Client) LatestRate(ctx context.Context, base, quote string) (domain.Rate, error) {
	var resp rateResponse
	path := "/api/v1/rates/" + url.PathEscape(base) + "/" + url.PathEscape(quote)
	if err := c.api.DoJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return domain.Rate{}, err
	}
	return domain.Rate{
		Base:      resp.Base,
		Quote:     resp.Quote,
		Value:     resp.Value,
		UpdatedAt: resp.UpdatedAt,
	}, nil
}

func (c *Client) ScheduleUpdate(ctx context.Context, base, quote string) (string, error) {
	var resp scheduleUpdateResponse
	req := scheduleUpdateRequest{Base: base, Quote: quote}
	if err := c.api.DoJSON(ctx, http.MethodPost, scheduleUpdatePath, req, &resp); err != nil {
		return "", err
	}
	return resp.UpdateID, nil
}

func (c *Client) UpdateStatus(ctx context.Context, updateID string) (domain.RateUpdate, error) {
	var resp updateStatusResponse
	path := scheduleUpdatePath + "/" + url.PathEscape(updateID)
	if err := c.api.DoJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return domain.RateUpdate{}, err
	}
	return domain.RateUpdate{
		UpdateID:  resp.UpdateID,
		Base:      resp.Base,
		Quote:     resp.Quote,
		Status:    domain.UpdateStatus(resp.Status),
		Value:     resp.Value,
		UpdatedAt: resp.UpdatedAt,
	}, nil
}
