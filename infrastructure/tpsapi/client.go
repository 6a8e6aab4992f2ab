package tpsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tps-admin/domain/dto"
	"tps-admin/domain/models"
	"tps-admin/domain/services"
	"tps-admin/pkg/logger"
)

const (
	citiesPath       = "/api/v1/tps/city"
	personsPath      = "/api/v1/tps/person"
	personV2Path     = "/api/v2/tps/person"
	personByJMBGPath = "/api/v2/tps/person/jmbg/"
	personByIDPath   = "/api/v2/tps/person/id/"
)

// Client talks to the TPS person/city service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenSource
}

var (
	_ services.PersonAPI = (*Client)(nil)
	_ services.CityAPI   = (*Client)(nil)
)

// NewClient creates a TPS API client. tokens may be nil, in which case
// requests carry no Authorization header.
func NewClient(baseURL string, timeout time.Duration, tokens *TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// ListCities fetches the city reference list
func (c *Client) ListCities(ctx context.Context) ([]models.City, error) {
	var cities []models.City
	if err := c.do(ctx, http.MethodGet, citiesPath, nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// ListPersons fetches every person with nested cities
func (c *Client) ListPersons(ctx context.Context) ([]models.PersonRecord, error) {
	var resps []dto.PersonResponse
	if err := c.do(ctx, http.MethodGet, personsPath, nil, &resps); err != nil {
		return nil, err
	}
	return dto.PersonResponsesToRecords(resps), nil
}

// GetPersonByJMBG fetches one person by identity number
func (c *Client) GetPersonByJMBG(ctx context.Context, jmbg string) (*models.PersonRecord, error) {
	var resp dto.PersonResponse
	if err := c.do(ctx, http.MethodGet, personByJMBGPath+url.PathEscape(jmbg), nil, &resp); err != nil {
		return nil, err
	}
	record := dto.PersonResponseToRecord(&resp)
	return &record, nil
}

// CreatePerson posts a new person
func (c *Client) CreatePerson(ctx context.Context, person models.Person) error {
	return c.do(ctx, http.MethodPost, personV2Path, dto.PersonToRequest(person), nil)
}

// UpdatePerson replaces the person identified by person.ID
func (c *Client) UpdatePerson(ctx context.Context, person models.Person) error {
	id, ok := person.ID.Get()
	if !ok {
		return models.ErrMissingPersonID
	}
	return c.do(ctx, http.MethodPut, personByIDPath+strconv.FormatInt(id, 10), dto.PersonToRequest(person), nil)
}

// DeletePerson deletes by internal id
func (c *Client) DeletePerson(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, personByIDPath+strconv.FormatInt(id, 10), nil, nil)
}

// Ping checks that the service answers the city endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListCities(ctx)
	return err
}

// do sends body as JSON (when non-nil) and decodes a 2xx response into out
// (when non-nil). Non-2xx responses become *models.APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("failed to sign service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.RemoteError("request_failed", "TPS API request failed", err, map[string]interface{}{
			"method": method,
			"path":   path,
		})
		return fmt.Errorf("failed to call TPS API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	logger.Remote("request", "TPS API request", map[string]interface{}{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var errResp dto.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || (errResp.CodeString() == "" && errResp.Message == "") {
		return &models.APIError{
			Status:  status,
			Code:    strconv.Itoa(status),
			Message: strings.TrimSpace(string(body)),
		}
	}
	return dto.ErrorResponseToAPIError(status, &errResp)
}
