package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/rios0rios0/gitlab-enhancer/internal/domain/entities"
	"github.com/rios0rios0/gitlab-enhancer/internal/domain/repositories"
	"github.com/rios0rios0/gitlab-enhancer/internal/infrastructure/metrics"
)

// ErrMalformedResponse is returned when a response body is not valid JSON.
var ErrMalformedResponse = errors.New("malformed JSON response")

const (
	failureHTTP      = "http"
	failureParse     = "parse"
	failureTransport = "transport"
)

// Fetcher issues paginated requests against a GitLab REST API. Every session
// it starts is independent; the fetcher only carries the shared transport.
type Fetcher struct {
	baseURL     string
	token       string
	perPage     int
	concurrency int
	client      *retryablehttp.Client
	limiter     *rate.Limiter
	metrics     *metrics.FetchMetrics
}

// NewFetcher builds a fetcher from the HTTP settings.
func NewFetcher(settings *entities.Settings, fetchMetrics *metrics.FetchMetrics) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = settings.HTTP.MaxRetries
	client.Logger = leveledLogger{}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.HTTPClient.Timeout = time.Duration(settings.HTTP.TimeoutSeconds) * time.Second

	limiter := rate.NewLimiter(rate.Inf, 1)
	if settings.HTTP.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(settings.HTTP.RequestsPerSecond), 1)
	}

	return &Fetcher{
		baseURL:     strings.TrimRight(settings.GitLab.BaseURL, "/"),
		token:       settings.GitLab.Token,
		perPage:     settings.HTTP.PerPage,
		concurrency: settings.HTTP.Concurrency,
		client:      client,
		limiter:     limiter,
		metrics:     fetchMetrics,
	}
}

// Fetch starts a session and loads page 1, plus pages 2..N unless the
// options ask for a single page. It returns once the session has settled.
func (f *Fetcher) Fetch(
	ctx context.Context,
	endpoint string,
	opts entities.FetchOptions,
) repositories.FetchSession {
	session := newFetchSession(f, endpoint, opts)
	f.metrics.Sessions.Inc()
	session.fetchAll(ctx)
	return session
}

// pageResult is one decoded page.
type pageResult struct {
	isList        bool
	items         []json.RawMessage
	document      json.RawMessage
	total         int
	totalPages    int
	hasTotal      bool
	hasTotalPages bool
}

func (f *Fetcher) pageSize(opts entities.FetchOptions) int {
	if opts.PerPage <= 0 && f.perPage > 0 {
		return f.perPage
	}
	return opts.EffectivePerPage()
}

// buildURL resolves the endpoint against the base URL and appends the marker,
// the pagination parameters and the caller's query parameters.
func (f *Fetcher) buildURL(endpoint string, opts entities.FetchOptions, page int) string {
	target := endpoint
	if !strings.HasPrefix(endpoint, "http") {
		base := f.baseURL
		if opts.BaseURL != "" {
			base = strings.TrimRight(opts.BaseURL, "/")
		}
		if !strings.HasPrefix(endpoint, "/") {
			base += "/"
		}
		target = base + endpoint
	}

	params := url.Values{}
	params.Set(entities.MarkerParam, "1")
	params.Set("per_page", strconv.Itoa(f.pageSize(opts)))
	params.Set("page", strconv.Itoa(page))
	for key, value := range opts.QueryParams {
		params.Set(key, value)
	}

	separator := "?"
	if strings.Contains(target, "?") {
		separator = "&"
	}
	return target + separator + params.Encode()
}

func (f *Fetcher) requestPage(
	ctx context.Context,
	rawURL string,
	headers map[string]string,
) (pageResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return pageResult{}, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return pageResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.token != "" {
		req.Header.Set("PRIVATE-TOKEN", f.token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return pageResult{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	f.metrics.ObserveStatus(resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return pageResult{}, entities.NewHTTPError(resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return pageResult{}, fmt.Errorf("failed to read response body: %w", err)
	}

	result, err := decodePage(body)
	if err != nil {
		return pageResult{}, err
	}
	result.total, result.hasTotal = headerInt(resp.Header, entities.HeaderTotal)
	result.totalPages, result.hasTotalPages = headerInt(resp.Header, entities.HeaderTotalPages)
	return result, nil
}

func decodePage(body []byte) (pageResult, error) {
	if !gjson.ValidBytes(body) {
		return pageResult{}, fmt.Errorf("%w: %d bytes", ErrMalformedResponse, len(body))
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsArray() {
		return pageResult{document: json.RawMessage(body)}, nil
	}

	result := pageResult{isList: true, items: []json.RawMessage{}}
	parsed.ForEach(func(_, value gjson.Result) bool {
		result.items = append(result.items, json.RawMessage(value.Raw))
		return true
	})
	return result, nil
}

// headerInt reads an integer header. Missing or unparsable values report false.
func headerInt(header http.Header, name string) (int, bool) {
	raw := strings.TrimSpace(header.Get(name))
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func failureReason(err error) string {
	var httpErr *entities.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return failureHTTP
	case errors.Is(err, ErrMalformedResponse):
		return failureParse
	default:
		return failureTransport
	}
}
