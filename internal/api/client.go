// Package api is the HTTP client for the glossary API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/glossview/internal/glossary"
)

var (
	// ErrNotList is returned when the terms body is JSON but not an array.
	ErrNotList = errors.New("terms body is not a list")
	// ErrNoGraph is returned when the graph body lacks a nodes or edges array.
	ErrNoGraph = errors.New("graph body has no nodes or edges array")
)

// FetchError reports a non-success HTTP status.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Client talks to the glossary API rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient swaps the transport. The default is http.DefaultClient, so no timeout is
// imposed beyond what the transport does.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Terms fetches GET /terms/. Any non-2xx status is a *FetchError.
func (c *Client) Terms(ctx context.Context) ([]glossary.Term, error) {
	resp, err := c.get(ctx, "/terms/")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: resp.Request.URL.String(), Status: resp.StatusCode}
	}
	var terms []glossary.Term
	if err := decode(resp.Body, &terms); err != nil {
		return nil, fmt.Errorf("decode terms: %w", err)
	}
	if terms == nil {
		return nil, fmt.Errorf("decode terms: %w", ErrNotList)
	}
	return terms, nil
}

// Graph fetches GET /graph. The status code is not checked: a 404 carrying a proper graph still
// draws. The body must be a JSON object with both a nodes and an edges array.
func (c *Client) Graph(ctx context.Context) (glossary.Graph, error) {
	resp, err := c.get(ctx, "/graph")
	if err != nil {
		return glossary.Graph{}, err
	}
	defer resp.Body.Close()

	var body struct {
		Nodes *[]glossary.GraphNode `json:"nodes"`
		Edges *[]glossary.GraphEdge `json:"edges"`
	}
	if err := decode(resp.Body, &body); err != nil {
		return glossary.Graph{}, fmt.Errorf("decode graph: %w", err)
	}
	if body.Nodes == nil || body.Edges == nil {
		return glossary.Graph{}, fmt.Errorf("decode graph: %w", ErrNoGraph)
	}
	return glossary.Graph{Nodes: *body.Nodes, Edges: *body.Edges}, nil
}

// decode reads the whole body as one JSON value; trailing data is an error.
func decode(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("request_id", reqID),
			zap.String("url", url),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	c.log.Debug("request done",
		zap.String("request_id", reqID),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}
