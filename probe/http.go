package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonwraymond/canary/health"
)

// HTTPOptions configures an HTTPProbe.
type HTTPOptions struct {
	// Client defaults to a client with a 10 second timeout.
	Client *http.Client

	// MinStatus and MaxStatus bound the accepted response status codes.
	// Defaults: 200 and 399.
	MinStatus int
	MaxStatus int
}

// HTTPProbe checks an HTTP endpoint with a GET request.
type HTTPProbe struct {
	described
	url  string
	opts HTTPOptions
}

// HTTP returns an HTTP_RESOURCE probe for url.
func HTTP(name, url string, opts HTTPOptions, descOpts ...health.DescriptorOption) *HTTPProbe {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.MinStatus == 0 {
		opts.MinStatus = http.StatusOK
	}
	if opts.MaxStatus == 0 {
		opts.MaxStatus = 399
	}
	return &HTTPProbe{
		described: describe(name, health.KindHTTPResource, descOpts),
		url:       url,
		opts:      opts,
	}
}

// Check implements health.Probe.
func (p *HTTPProbe) Check(ctx context.Context) (health.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return health.Result{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.opts.Client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return health.Result{}, ctxErr
		}
		return health.Critical(fmt.Sprintf("request failed: %v", err)), nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < p.opts.MinStatus || resp.StatusCode > p.opts.MaxStatus {
		return health.Critical(fmt.Sprintf("unexpected status %d", resp.StatusCode)), nil
	}
	return health.Healthy(fmt.Sprintf("status %d", resp.StatusCode)), nil
}
