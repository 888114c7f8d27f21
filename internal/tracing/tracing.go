// Package tracing sets up Zipkin spans for the HTTP server and client.
package tracing

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/middleware/http"
	"github.com/openzipkin/zipkin-go/reporter"
	httpreporter "github.com/openzipkin/zipkin-go/reporter/http"

	"github.com/ibeckermayer/mockshot/internal/config"
)

// Tracer owns the span reporter. Without a collector address every span is a noop.
type Tracer struct {
	tracer   *zipkin.Tracer
	reporter reporter.Reporter
	enabled  bool
}

// New creates a tracer for the service listening on addr
func New(cfg config.TracingConfig, addr string) (*Tracer, error) {
	if cfg.ZipkinAddress == "" {
		endpoint, _ := zipkin.NewEndpoint(cfg.ServiceName, "")
		rep := reporter.NewNoopReporter()
		tracer, err := zipkin.NewTracer(rep, zipkin.WithLocalEndpoint(endpoint), zipkin.WithNoopTracer(true))
		if err != nil {
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
		return &Tracer{tracer: tracer, reporter: rep}, nil
	}

	// set up a span reporter
	rep := httpreporter.NewReporter(collectorURL(cfg.ZipkinAddress))

	// create our local service endpoint
	endpoint, err := zipkin.NewEndpoint(cfg.ServiceName, localHostPort(addr))
	if err != nil {
		log.Printf("[tracing] unable to create local endpoint: %v", err)
		endpoint, _ = zipkin.NewEndpoint(cfg.ServiceName, "")
	}

	tracer, err := zipkin.NewTracer(rep, zipkin.WithLocalEndpoint(endpoint))
	if err != nil {
		rep.Close()
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	log.Printf("[tracing] Reporting spans to %s", cfg.ZipkinAddress)
	return &Tracer{tracer: tracer, reporter: rep, enabled: true}, nil
}

// Enabled reports whether spans are sent to a collector
func (t *Tracer) Enabled() bool {
	return t.enabled
}

// Middleware traces every request handled by the wrapped handler
func (t *Tracer) Middleware() func(http.Handler) http.Handler {
	return zipkinhttp.NewServerMiddleware(t.tracer, zipkinhttp.TagResponseSize(true))
}

// Client wraps base so outgoing requests carry B3 headers and produce client spans
func (t *Tracer) Client(base *http.Client) (*http.Client, error) {
	if base == nil {
		base = &http.Client{}
	}
	c, err := zipkinhttp.NewClient(t.tracer, zipkinhttp.WithClient(base), zipkinhttp.ClientTrace(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create traced client: %w", err)
	}
	return c.Client, nil
}

// Close flushes pending spans
func (t *Tracer) Close() error {
	return t.reporter.Close()
}

// collectorURL accepts either host:port or a full URL
func collectorURL(addr string) string {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	if !strings.Contains(strings.TrimPrefix(strings.TrimPrefix(addr, "http://"), "https://"), "/") {
		addr += "/api/v2/spans"
	}
	return addr
}

func localHostPort(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
