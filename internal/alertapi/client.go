// Package alertapi is the HTTP client for the alert-management API.
//
// Every call is a single request: there is no retry and no caching.
package alertapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"alert-dashboard/internal/models"
)

// ErrNotFound is returned when the backend answers 404.
var ErrNotFound = errors.New("alert not found")

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrNotFound) match 404 answers.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// maxErrorBody caps how much of an error response is kept in HTTPError.
const maxErrorBody = 4096

// Client talks to the alert API rooted at a base URL such as
// http://localhost:8083/api.
type Client struct {
	baseURL string
	rest    *resty.Client
}

// New returns a client for baseURL. A nil httpClient uses resty's default
// transport. Retries stay disabled.
func New(baseURL string, httpClient *http.Client) *Client {
	rest := resty.New()
	if httpClient != nil {
		rest = resty.NewWithClient(httpClient)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		rest:    rest.SetRetryCount(0),
	}
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAlerts returns every alert in server order.
func (c *Client) GetAlerts(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := c.do(ctx, http.MethodGet, "/alerts", nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetAlertsByStatus returns the alerts the server holds in the given status.
func (c *Client) GetAlertsByStatus(ctx context.Context, status models.Status) ([]models.Alert, error) {
	var alerts []models.Alert
	path := "/alerts/status/" + url.PathEscape(string(status))
	if err := c.do(ctx, http.MethodGet, path, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// GetAlertByID returns one alert or an error matching ErrNotFound.
func (c *Client) GetAlertByID(ctx context.Context, id int64) (models.Alert, error) {
	var alert models.Alert
	if err := c.do(ctx, http.MethodGet, alertPath(id), nil, &alert); err != nil {
		return models.Alert{}, err
	}
	return alert, nil
}

// UpdateAlertStatus issues the partial status update and returns the
// server's representation of the alert.
func (c *Client) UpdateAlertStatus(ctx context.Context, id int64, status models.Status, reviewedBy, notes string) (models.Alert, error) {
	params := url.Values{}
	params.Set("status", string(status))
	params.Set("reviewedBy", reviewedBy)
	params.Set("notes", notes)

	var alert models.Alert
	if err := c.do(ctx, http.MethodPatch, alertPath(id)+"/status", params, &alert); err != nil {
		return models.Alert{}, err
	}
	return alert, nil
}

func alertPath(id int64) string {
	return "/alerts/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Execute(method, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		body := resp.Body()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: code,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
