// Package network is the outbound HTTP collaborator: a single GET primitive
// and a batch primitive that runs independent GETs in parallel.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pixeltube-cli/pixeltube/log"
	lop "github.com/samber/lo/parallel"
	"golang.org/x/net/http2"
)

// Request describes one GET.
type Request struct {
	URL     string
	Headers map[string]string
	// UseAuth asks for the host's credentials. Authentication is not
	// supported, so the flag is carried but never acted on.
	UseAuth bool
}

// Response is the outcome of one GET. Transport failures leave OK false and set Err.
type Response struct {
	OK   bool
	Code int
	Body []byte
	Err  error
}

// Requester is what fetchers need from the transport.
type Requester interface {
	Get(ctx context.Context, req Request) Response
	// Batch runs every request and returns responses in submission order.
	Batch(ctx context.Context, reqs ...Request) []Response
}

// Client implements Requester on top of net/http.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient builds a client whose requests time out after timeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(),
		},
		userAgent: userAgent,
	}
}

// newTransport initializes a tuned http.Transport with pool limits suited to small fan-outs.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	if err := http2.ConfigureTransport(t); err != nil {
		log.Warnf("http2 unavailable, falling back to HTTP/1.1: %v", err)
	}
	return t
}

// Get performs a single GET and never panics on transport errors.
func (c *Client) Get(ctx context.Context, r Request) Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return Response{Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debugf("GET %s failed: %v", r.URL, err)
		return Response{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Code: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	log.Debugf("GET %s -> %d", r.URL, resp.StatusCode)
	return Response{OK: ok, Code: resp.StatusCode, Body: body}
}

// Batch issues all requests in parallel and waits for every one of them.
func (c *Client) Batch(ctx context.Context, reqs ...Request) []Response {
	return lop.Map(reqs, func(r Request, _ int) Response {
		return c.Get(ctx, r)
	})
}
