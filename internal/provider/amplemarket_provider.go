package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/company-lookup/internal/model"
)

const maxBodyBytes = 10 << 20

// AmplemarketProvider looks up companies via the Amplemarket API.
// It holds no mutable state, so one instance can serve concurrent callers.
type AmplemarketProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewAmplemarketProvider creates a provider for the given credential and endpoint.
// baseURL normally comes from config, which defaults it to the public endpoint.
// A zero timeout means the request waits as long as the server does.
// An empty apiKey is accepted here; every lookup then fails with ErrMissingCredential.
func NewAmplemarketProvider(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *AmplemarketProvider {
	return &AmplemarketProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (a *AmplemarketProvider) Name() string {
	return "amplemarket"
}

// FindCompany issues a single GET for the input and classifies the outcome.
// There are no retries: one attempt either yields a record or one of the
// errors declared in errors.go.
func (a *AmplemarketProvider) FindCompany(ctx context.Context, input string) (model.CompanyRecord, error) {
	if a.apiKey == "" {
		return nil, ErrMissingCredential
	}

	params := ClassifyInput(input)
	a.logger.Debug("looking up company",
		zap.String("param", string(params.Kind)),
		zap.String("value", params.Value),
	)

	rec, err := a.fetch(ctx, params)
	if err != nil {
		a.logger.Debug("company lookup failed",
			zap.String("param", string(params.Kind)),
			zap.String("value", params.Value),
			zap.Error(err),
		)
		return nil, err
	}
	return rec, nil
}

func (a *AmplemarketProvider) fetch(ctx context.Context, params model.QueryParams) (model.CompanyRecord, error) {
	reqURL, err := a.requestURL(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrRequest, err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "company-lookup/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, transportError(err)
	}

	var rec model.CompanyRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, &DecodeError{Body: string(body), Err: err}
	}
	// A literal null decodes without error into a nil map.
	if rec == nil {
		return nil, &DecodeError{Body: string(body), Err: errors.New("response is not a JSON object")}
	}

	return rec, nil
}

func (a *AmplemarketProvider) requestURL(params model.QueryParams) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	q := u.Query()
	q.Set(string(params.Kind), params.Value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
