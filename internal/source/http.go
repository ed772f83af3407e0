package source

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/config"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/logger"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// leveledLogger routes retryablehttp messages to the application logger.
// Errors are logged as warnings since the client retries them.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Log(logger.LevelWarn, msg, keysAndValues...)
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Log(logger.LevelWarn, msg, keysAndValues...)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log(logger.LevelDebug, msg, keysAndValues...)
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Log(logger.LevelDebug, msg, keysAndValues...)
}

// Option configures the retrying client of an HTTPSource
type Option func(*retryablehttp.Client)

// WithMaxRetries sets the maximum number of retries
func WithMaxRetries(maxRetries int) Option {
	return func(client *retryablehttp.Client) {
		client.RetryMax = maxRetries
	}
}

// WithRetryWait sets the bounds of the backoff between retries
func WithRetryWait(waitMin, waitMax time.Duration) Option {
	return func(client *retryablehttp.Client) {
		client.RetryWaitMin = waitMin
		client.RetryWaitMax = waitMax
	}
}

// HTTPSource fetches listApis from a CloudStack management server
type HTTPSource struct {
	endpoint string
	key      string
	secret   string
	client   *http.Client
}

// NewHTTPSource creates a source for the configured environment
func NewHTTPSource(cfg *config.Config, options ...Option) *HTTPSource {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Transport = cleanhttp.DefaultPooledTransport()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(leveledLogger{})
	retryClient.CheckRetry = retryPolicy

	for _, option := range options {
		option(retryClient)
	}

	client := retryClient.StandardClient()
	client.Timeout = cfg.Environment.Timeout

	return &HTTPSource{
		endpoint: cfg.BaseURL(),
		key:      cfg.Environment.Key,
		secret:   cfg.Environment.Secret,
		client:   client,
	}
}

// retryPolicy does not retry authentication failures; credentials won't fix themselves.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// FetchAllMethods calls listApis and decodes the method records
func (s *HTTPSource) FetchAllMethods(ctx context.Context) ([]model.RawMethod, error) {
	params := url.Values{}
	params.Set("command", "listApis")
	params.Set("response", "json")
	params.Set("apiKey", s.key)

	requestURL := s.endpoint + "?" + SignedQuery(params, s.secret)
	logger.Debug("Fetching listApis from %s", s.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listApis request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listApis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// CloudStack reports errors as JSON bodies with non-200 status codes
		var apiErr *APIError
		if _, decodeErr := Decode(io.LimitReader(resp.Body, maxResponseSize)); errors.As(decodeErr, &apiErr) {
			return nil, apiErr
		}
		return nil, fmt.Errorf("listApis returned HTTP %d", resp.StatusCode)
	}

	methods, err := Decode(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetched %d methods", len(methods))
	return methods, nil
}

// maxResponseSize bounds the listApis payload; a full 4.x catalog is around 10MB.
const maxResponseSize = 256 << 20

// SignedQuery encodes params with the CloudStack request signature appended.
// The signature is the base64 HMAC-SHA1 of the lower-cased, key-sorted query string.
func SignedQuery(params url.Values, secret string) string {
	query := encodeSorted(params)
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(strings.ToLower(query)))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return query + "&signature=" + escape(signature)
}

func encodeSorted(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strings.ToLower(keys[i]) < strings.ToLower(keys[j])
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range params[k] {
			parts = append(parts, k+"="+escape(v))
		}
	}
	return strings.Join(parts, "&")
}

// escape query-escapes v the way the management server re-encodes it (spaces as %20)
func escape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
