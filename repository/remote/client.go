package remote

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskspace/domain"
	appLogger "github.com/fastygo/taskspace/pkg/logger"
)

// ErrMalformedResponse reports a 2xx response whose body could not be decoded.
var ErrMalformedResponse = domain.NewError(domain.ErrCodeNetwork, "malformed task api response")

// Options configures the HTTP client used to reach the remote task API.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Name    string
	// Dial overrides the connection dialer (in-memory listeners in tests).
	Dial fasthttp.DialFunc
}

// Client performs JSON requests against the remote task API.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient builds a fasthttp-backed client. The base URL is used without a trailing slash.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: &fasthttp.Client{
			Name:                opts.Name,
			ReadTimeout:         opts.Timeout,
			WriteTimeout:        opts.Timeout,
			MaxIdleConnDuration: time.Minute,
			Dial:                opts.Dial,
		},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		logger:  logger,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a request and decodes a 2xx JSON body into out when out is non-nil
// and the body is not empty. It returns the response status.
// Transport failures map to domain.NetworkError and non-2xx statuses to domain.ServerError.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, out interface{}) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return 0, domain.NetworkError(err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, domain.WrapError(domain.ErrCodeInternal, "encode request", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	log := appLogger.WithRequestID(ctx, c.logger).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	started := time.Now()
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		log.Warn("task api request failed", zap.Error(err))
		return 0, domain.NetworkError(err)
	}

	status := resp.StatusCode()
	log.Debug("task api response", zap.Int("status", status), zap.Duration("elapsed", time.Since(started)))

	if status < 200 || status > 299 {
		log.Warn("task api returned error status", zap.Int("status", status), zap.ByteString("body", truncate(resp.Body(), 512)))
		return status, domain.ServerError(status)
	}

	if out != nil && len(strings.TrimSpace(string(resp.Body()))) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return status, domain.WrapError(ErrMalformedResponse.Code, ErrMalformedResponse.Message, err)
		}
	}
	return status, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// Ping probes the task collection endpoint and returns the HTTP status.
func (c *Client) Ping(ctx context.Context) (int, error) {
	return c.Do(ctx, fasthttp.MethodGet, tasksPath, nil, nil)
}
