package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/mkersey/graphmail/internal/odata"
	"github.com/mkersey/graphmail/internal/query"
)

// DefaultBaseURL is the production Microsoft Graph endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Outlook is the protocol for Graph Outlook resources: camelCase
// field names and the OData builder.
var Outlook query.Protocol = outlookProtocol{}

type outlookProtocol struct{}

func (outlookProtocol) Casing(name string) string { return odata.ToCamel(name) }
func (outlookProtocol) NewBuilder() query.Builder { return odata.NewBuilder() }

// Session is an authenticated connection to one mailbox. It carries a
// static bearer token; acquiring and refreshing tokens is the
// caller's concern.
type Session struct {
	base   string
	token  string
	client *http.Client
	log    *logrus.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithBaseURL overrides the Graph endpoint, e.g. for a test server or
// a sovereign cloud.
func WithBaseURL(base string) Option {
	return func(s *Session) { s.base = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.client = c }
}

// WithLogger overrides the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession creates a session using the given bearer token.
func NewSession(token string, opts ...Option) *Session {
	s := &Session{
		base:   DefaultBaseURL,
		token:  token,
		client: http.DefaultClient,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// APIError is a non-2xx response from the Graph API, decoded from the
// standard error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph: unexpected status %d", e.StatusCode)
}

// IsNotFound returns true if the error is a Graph 404.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}

// do issues one request and decodes the response into out, if out is
// non-nil. API errors are returned as *APIError; transport errors
// propagate wrapped.
func (s *Session) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := s.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("graph: encode %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("graph: %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	s.log.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"query":  params.Encode(),
	}).Debug("graph request")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("graph: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("graph: decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (s *Session) get(ctx context.Context, path string, params url.Values, out any) error {
	return s.do(ctx, http.MethodGet, path, params, nil, out)
}

func (s *Session) post(ctx context.Context, path string, body, out any) error {
	return s.do(ctx, http.MethodPost, path, nil, body, out)
}

func (s *Session) patch(ctx context.Context, path string, body any) error {
	return s.do(ctx, http.MethodPatch, path, nil, body, nil)
}

func (s *Session) delete(ctx context.Context, path string) error {
	return s.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

// page is the standard Graph collection envelope.
type page[T any] struct {
	Value []T `json:"value"`
}

// fetchCollection runs a compiled builder against a collection path.
// The query's limit maps to $top; zero leaves the remote default in
// place.
func fetchCollection[T any](ctx context.Context, s *Session, path string, b query.Builder, limit int) ([]T, error) {
	ob, ok := b.(*odata.Builder)
	if !ok {
		return nil, fmt.Errorf("graph: unsupported builder %T, expected *odata.Builder", b)
	}
	params := ob.Values()
	if limit > 0 {
		params.Set("$top", fmt.Sprintf("%d", limit))
	}

	var p page[T]
	if err := s.get(ctx, path, params, &p); err != nil {
		return nil, err
	}
	return p.Value, nil
}
