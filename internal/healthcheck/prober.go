package healthcheck

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nodewatchhq/nodewatch/internal/node"
)

const (
	// DefaultProbePath is the health endpoint probed on every node.
	DefaultProbePath = "/healthcheck"
	// DefaultConnectTimeout bounds connection establishment per probe.
	DefaultConnectTimeout = time.Second
	// DefaultRequestTimeout bounds one whole probe exchange.
	DefaultRequestTimeout = time.Second
)

// Prober issues a single liveness probe against one node.
type Prober interface {
	Probe(ctx context.Context, target node.Node) Outcome
}

// ProbeConfig carries the prober's endpoint and timeout settings. Zero
// values fall back to the package defaults.
type ProbeConfig struct {
	Path           string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

// HTTPProber probes nodes with GET requests under two independent
// bounds: a dial timeout and a total request timeout. The underlying
// client is shared and safe for concurrent use.
type HTTPProber struct {
	logger *slog.Logger
	client *http.Client
	path   string
}

// NewHTTPProber builds a prober from the given settings.
func NewHTTPProber(log *slog.Logger, cfg ProbeConfig) *HTTPProber {
	if log == nil {
		log = slog.Default()
	}
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = DefaultProbePath
	}
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &HTTPProber{
		logger: log.With(slog.String("component", "prober")),
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
			// A redirect is the node's own answer; report it instead of
			// chasing the target.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		path: path,
	}
}

// Probe issues one GET against the node's health endpoint. It never
// returns an error: every transport failure becomes a Failed outcome,
// and any HTTP status at all counts as Responded. Redirects are
// reported, not followed.
func (p *HTTPProber) Probe(ctx context.Context, target node.Node) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.HTTPURL(p.path), nil)
	if err != nil {
		return Failed(err.Error())
	}
	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		reason := probeFailureReason(err)
		p.logger.Debug("probe failed",
			slog.String("node", target.String()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("reason", reason),
		)
		return Failed(reason)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	p.logger.Debug("probe responded",
		slog.String("node", target.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)
	return Responded(resp.StatusCode)
}

// probeFailureReason strips the client's URL envelope so chat output
// carries the concise transport cause ("connection refused", "context
// deadline exceeded") instead of the full request description.
func probeFailureReason(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
