// Copyright 2020 The Bankfeed Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package gocardless

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bankfeed-io/bankfeed"
	"github.com/bankfeed-io/bankfeed/internal/model"
	"github.com/bankfeed-io/bankfeed/internal/trace"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequests = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "gocardless_api_requests_total",
		Help: "Counter of requests made against the account aggregation API",
	}, []string{"operation"})
)

// Client is the narrow surface this application consumes from the account
// aggregation API. Token acquisition happens behind these methods and is
// never a caller concern.
type Client interface {
	Ping() error

	CreateRequisition(req CreateRequisitionRequest) (*model.Requisition, error)
	GetRequisition(requisitionID string) (*model.Requisition, error)
	DeleteRequisition(requisitionID string) error

	GetAccountDetails(accountID string) (*model.AccountDetails, error)
	GetAccountMetadata(accountID string) (*model.AccountMetadata, error)
	GetTransactions(accountID string, dateFrom, dateTo time.Time) (*model.Transactions, error)
	GetBalances(accountID string) ([]model.Balance, error)

	GetInstitution(institutionID string) (*model.Institution, error)
}

// CreateRequisitionRequest are the inputs for starting a consent flow.
type CreateRequisitionRequest struct {
	InstitutionID      string
	ReferenceID        string
	RedirectURL        string
	AccessValidForDays int
}

type apiClient struct {
	logger     log.Logger
	endpoint   string
	httpClient *http.Client

	secretID  string
	secretKey string

	tokens tokenCache
}

// NewClient returns a Client which makes HTTP calls against an account
// aggregation API instance. An empty endpoint picks the hosted service.
func NewClient(logger log.Logger, endpoint, secretID, secretKey string, httpClient *http.Client) Client {
	if endpoint == "" {
		endpoint = "https://bankaccountdata.gocardless.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger.Log("gocardless", fmt.Sprintf("using %s for aggregation API address", endpoint))

	return &apiClient{
		logger:     logger,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: httpClient,
		secretID:   secretID,
		secretKey:  secretKey,
	}
}

// response is implemented by every decoded API payload so failures reported
// in the body pass through the same taxonomy as HTTP statuses.
type response interface {
	statusCode() int
}

type tokenResponse struct {
	Access        string `json:"access"`
	AccessExpires int    `json:"access_expires,omitempty"`
	Refresh       string `json:"refresh,omitempty"`
	StatusCode    int    `json:"status_code,omitempty"`
}

func (r tokenResponse) statusCode() int { return r.StatusCode }

type requisitionResponse struct {
	model.Requisition
	StatusCode int `json:"status_code,omitempty"`
}

func (r requisitionResponse) statusCode() int { return r.StatusCode }

type deleteResponse struct {
	Summary    string `json:"summary,omitempty"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (r deleteResponse) statusCode() int { return r.StatusCode }

type accountDetailsResponse struct {
	Account    model.AccountDetails `json:"account"`
	StatusCode int                  `json:"status_code,omitempty"`
}

func (r accountDetailsResponse) statusCode() int { return r.StatusCode }

type accountMetadataResponse struct {
	model.AccountMetadata
	StatusCode int `json:"status_code,omitempty"`
}

func (r accountMetadataResponse) statusCode() int { return r.StatusCode }

type transactionsResponse struct {
	Transactions model.Transactions `json:"transactions"`
	StatusCode   int                `json:"status_code,omitempty"`
}

func (r transactionsResponse) statusCode() int { return r.StatusCode }

type balancesResponse struct {
	Balances   []model.Balance `json:"balances"`
	StatusCode int             `json:"status_code,omitempty"`
}

func (r balancesResponse) statusCode() int { return r.StatusCode }

type institutionResponse struct {
	model.Institution
	StatusCode int `json:"status_code,omitempty"`
}

func (r institutionResponse) statusCode() int { return r.StatusCode }

// Ping acquires (or re-uses) the access token, which exercises both network
// reachability and credentials. Wired into the admin server's liveness probe.
func (c *apiClient) Ping() error {
	_, err := c.accessToken()
	return err
}

func (c *apiClient) accessToken() (string, error) {
	return c.tokens.Token(func() (string, error) {
		var out tokenResponse
		body := map[string]string{
			"secret_id":  c.secretID,
			"secret_key": c.secretKey,
		}
		if err := c.roundTrip("generate token", "POST", "/api/v2/token/new/", nil, "", body, &out); err != nil {
			return "", err
		}
		return out.Access, nil
	})
}

// ResetToken drops the cached access token so the next call re-acquires one.
// Exposed for test isolation.
func (c *apiClient) ResetToken() {
	c.tokens.Reset()
}

func (c *apiClient) CreateRequisition(req CreateRequisitionRequest) (*model.Requisition, error) {
	body := map[string]interface{}{
		"institution_id": req.InstitutionID,
		"reference":      req.ReferenceID,
		"redirect":       req.RedirectURL,
	}
	if req.AccessValidForDays > 0 {
		body["access_valid_for_days"] = req.AccessValidForDays
	}

	var out requisitionResponse
	if err := c.do("create requisition", "POST", "/api/v2/requisitions/", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Requisition, nil
}

func (c *apiClient) GetRequisition(requisitionID string) (*model.Requisition, error) {
	var out requisitionResponse
	path := fmt.Sprintf("/api/v2/requisitions/%s/", requisitionID)
	if err := c.do("get requisition", "GET", path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Requisition, nil
}

func (c *apiClient) DeleteRequisition(requisitionID string) error {
	var out deleteResponse
	path := fmt.Sprintf("/api/v2/requisitions/%s/", requisitionID)
	return c.do("delete requisition", "DELETE", path, nil, nil, &out)
}

func (c *apiClient) GetAccountDetails(accountID string) (*model.AccountDetails, error) {
	var out accountDetailsResponse
	path := fmt.Sprintf("/api/v2/accounts/%s/details/", accountID)
	if err := c.do("get account details", "GET", path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

func (c *apiClient) GetAccountMetadata(accountID string) (*model.AccountMetadata, error) {
	var out accountMetadataResponse
	path := fmt.Sprintf("/api/v2/accounts/%s/", accountID)
	if err := c.do("get account metadata", "GET", path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.AccountMetadata, nil
}

func (c *apiClient) GetTransactions(accountID string, dateFrom, dateTo time.Time) (*model.Transactions, error) {
	query := url.Values{}
	if !dateFrom.IsZero() {
		query.Set("date_from", dateFrom.Format("2006-01-02"))
	}
	if !dateTo.IsZero() {
		query.Set("date_to", dateTo.Format("2006-01-02"))
	}

	var out transactionsResponse
	path := fmt.Sprintf("/api/v2/accounts/%s/transactions/", accountID)
	if err := c.do("get transactions", "GET", path, query, nil, &out); err != nil {
		return nil, err
	}
	return &out.Transactions, nil
}

func (c *apiClient) GetBalances(accountID string) ([]model.Balance, error) {
	var out balancesResponse
	path := fmt.Sprintf("/api/v2/accounts/%s/balances/", accountID)
	if err := c.do("get balances", "GET", path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Balances, nil
}

func (c *apiClient) GetInstitution(institutionID string) (*model.Institution, error) {
	var out institutionResponse
	path := fmt.Sprintf("/api/v2/institutions/%s/", institutionID)
	if err := c.do("get institution", "GET", path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Institution, nil
}

// do acquires the access token and performs one authenticated call.
func (c *apiClient) do(op, method, path string, query url.Values, body interface{}, out response) error {
	token, err := c.accessToken()
	if err != nil {
		return err
	}
	return c.roundTrip(op, method, path, query, token, body, out)
}

func (c *apiClient) roundTrip(op, method, path string, query url.Values, token string, body interface{}, out response) error {
	apiRequests.With("operation", op).Add(1)

	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("gocardless: %s: %v", op, err)
		}
	}

	ctx, cancelFn := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelFn()

	req, err := http.NewRequest(method, u, &buf)
	if err != nil {
		return fmt.Errorf("gocardless: %s: %v", op, err)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("bankfeed/%s", bankfeed.Version))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	span := opentracing.StartSpan(fmt.Sprintf("gocardless-%s", strings.ReplaceAll(op, " ", "-")))
	defer span.Finish()
	req = trace.DecorateHttpRequest(req, span)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gocardless: %s: %v", op, err)
	}
	defer resp.Body.Close()

	if err := Failure(op, resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gocardless: %s: decode: %v", op, err)
	}
	return Failure(op, out.statusCode())
}
