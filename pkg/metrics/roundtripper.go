package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type contextKey struct{}

var endpointKey contextKey

// WithEndpoint attaches a low-cardinality endpoint label to the request context.
// Callers must use a route template ("/appointments/{id}/cancel"), never raw paths.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, endpointKey, endpoint)
}

// EndpointFromContext returns the endpoint label set by WithEndpoint
func EndpointFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(endpointKey).(string); ok {
		return v
	}
	return "unknown"
}

// RoundTripper instruments outbound HTTP requests with Prometheus metrics
type RoundTripper struct {
	base    http.RoundTripper
	metrics *Metrics
}

// NewRoundTripper wraps base (http.DefaultTransport if nil) with request metrics
func NewRoundTripper(m *Metrics, base http.RoundTripper) *RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RoundTripper{base: base, metrics: m}
}

// RoundTrip implements http.RoundTripper
func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	endpoint := EndpointFromContext(req.Context())
	start := time.Now()

	resp, err := rt.base.RoundTrip(req)
	if err != nil {
		rt.metrics.ObserveError(req.Method, endpoint)
		return nil, err
	}

	rt.metrics.ObserveRequest(req.Method, endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
	return resp, nil
}
