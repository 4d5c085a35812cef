// Package client is the HTTP contract every catalog call goes through:
// endpoint normalisation, bearer auth, JSON or multipart bodies and one
// normalised error type.
package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"travelcms/constants"
	"travelcms/services/logger"
)

const DefaultBaseURL = "http://localhost:8000" + constants.APIRoot

var emptyObject = []byte("{}")

type Options struct {
	// BaseURL includes the api root, e.g. http://localhost:8000/api/v1.
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
	Logger     logger.Logger
}

type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	logger     logger.Logger
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		tokens:     opts.Tokens,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.tokens == nil {
		c.tokens = NewMemoryTokenStore("")
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	if c.logger == nil {
		c.logger = logger.Nop{}
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// NormalizeEndpoint strips a leading api root so it is never duplicated and
// ensures a leading slash.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	if endpoint == constants.APIRoot {
		return "/"
	}
	if strings.HasPrefix(endpoint, constants.APIRoot+"/") || strings.HasPrefix(endpoint, constants.APIRoot+"?") {
		endpoint = endpoint[len(constants.APIRoot):]
		if !strings.HasPrefix(endpoint, "/") {
			endpoint = "/" + endpoint
		}
	}
	return endpoint
}

// URL is the absolute address of endpoint.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + NormalizeEndpoint(endpoint)
}

func (c *Client) encode(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		return b.encode()
	}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, "", err
	}
	return buf, "application/json", nil
}

// Do sends one request and decodes a 2xx JSON body into out. Every failure,
// including transport failures, is returned as a *RequestError.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	endpoint = NormalizeEndpoint(endpoint)
	reader, contentType, err := c.encode(body)
	if err != nil {
		return c.fail(method, endpoint, &RequestError{Message: "encode request: " + err.Error()})
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return c.fail(method, endpoint, &RequestError{Message: err.Error()})
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token, err := c.tokens.Token()
	if err != nil {
		c.logger.Error("read token: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("%s %s", method, endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(method, endpoint, &RequestError{Message: transportMessage(err), cancelled: ctx.Err() != nil})
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(method, endpoint, &RequestError{Message: transportMessage(err), cancelled: ctx.Err() != nil})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(method, endpoint, parseErrorBody(resp.StatusCode, payload))
	}
	if out == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(payload)) == 0 {
		// out types that cannot hold an object stay zero.
		_ = json.Unmarshal(emptyObject, out)
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return c.fail(method, endpoint, &RequestError{Status: resp.StatusCode, Message: "decode response: " + err.Error()})
	}
	return nil
}

func (c *Client) fail(method, endpoint string, err *RequestError) error {
	c.logger.Error("%s %s failed (%d): %s", method, endpoint, err.Status, err.Message)
	return err
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, out)
}
