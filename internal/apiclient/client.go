package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
	userAgent        = "wateringdiary-web/1"
)

// Client talks to the Watering Diary REST API. It holds no state between
// calls and never caches responses.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		if httpClient != nil {
			client.httpClient = httpClient
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse api base url %q", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("api base url %q must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, errors.Errorf("api base url %q has no host", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (client *Client) BaseURL() string {
	return client.baseURL.String()
}

type call struct {
	op       string
	resource Resource
	method   string
	path     []string
	query    url.Values
	body     any
}

func (client *Client) endpoint(path []string, query url.Values) string {
	target := client.baseURL.JoinPath(path...)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

func (client *Client) newRequest(ctx context.Context, request call) (*http.Request, error) {
	var body io.Reader
	if request.body != nil {
		encoded, err := json.Marshal(request.body)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s %s payload", request.op, request.resource)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, request.method, client.endpoint(request.path, request.query), body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s request", request.op, request.resource)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if request.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send performs the call and returns the raw response. Non-2xx responses
// are consumed and turned into *Error.
func (client *Client) send(ctx context.Context, request call) (*http.Response, error) {
	req, err := client.newRequest(ctx, request)
	if err != nil {
		return nil, &Error{Op: request.op, Resource: request.resource, Err: err}
	}

	started := time.Now()
	resp, err := client.httpClient.Do(req)
	if err != nil {
		client.logger.Warn("api request failed",
			zap.String("op", request.op),
			zap.String("resource", string(request.resource)),
			zap.String("method", request.method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, &Error{Op: request.op, Resource: request.resource, Err: errors.Wrapf(err, "%s %s", request.method, req.URL.Path)}
	}

	client.logger.Debug("api request",
		zap.String("op", request.op),
		zap.String("method", request.method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(started)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer client.closeBody(resp)
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	apiErr := &Error{
		Op:       request.op,
		Resource: request.resource,
		Status:   resp.StatusCode,
		Message:  errorBodyMessage(raw),
	}
	client.logger.Warn("api request rejected",
		zap.String("op", request.op),
		zap.String("resource", string(request.resource)),
		zap.Int("status", resp.StatusCode),
		zap.String("message", apiErr.Message),
	)
	return nil, apiErr
}

func (client *Client) do(ctx context.Context, request call, out any) error {
	resp, err := client.send(ctx, request)
	if err != nil {
		return err
	}
	defer client.closeBody(resp)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Op: request.op, Resource: request.resource, Err: errors.Wrap(err, "read response body")}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: request.op, Resource: request.resource, Err: errors.Wrapf(err, "decode response body: %.200s", raw)}
	}
	return nil
}

func (client *Client) closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		client.logger.Debug("close api response body", zap.Error(err))
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// errorBodyMessage extracts {message} or {error} from an API error body.
// Anything else yields an empty message.
func errorBodyMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if message := strings.TrimSpace(body.Message); message != "" {
		return message
	}
	return strings.TrimSpace(body.Error)
}

func idSegment(id int64) string {
	return strconv.FormatInt(id, 10)
}
