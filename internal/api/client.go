// Package api talks to the cold email generator server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 4 << 20

// ServerError is a failure reported by the server itself, as opposed to a
// transport failure.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// ServerMessage returns the server-supplied message carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}

// Client is a thin JSON client for the generator endpoints.
// No timeout is configured; requests end with the transport or the context.
//
// The server keeps the conversation in a session cookie, so every call made
// through one Client shares a cookie jar until ResetSession is called.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu  sync.Mutex
	jar *cookiejar.Jar
}

func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{})
}

// NewClientWithHTTP uses httpClient for transport. Its Jar is ignored; the
// Client manages session cookies itself.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		jar:        newJar(),
	}
}

func newJar() *cookiejar.Jar {
	// cookiejar.New only fails on bad options
	jar, _ := cookiejar.New(nil)
	return jar
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResetSession drops the session cookies so the next call starts a new
// conversation on the server. Requests already in flight keep the old jar.
func (c *Client) ResetSession() {
	c.mu.Lock()
	c.jar = newJar()
	c.mu.Unlock()
}

// Cookies returns the session cookies the server has set for this client.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	return c.currentJar().Cookies(u)
}

// SetCookies resumes a session saved from an earlier run.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	u, err := url.Parse(c.baseURL)
	if err != nil || len(cookies) == 0 {
		return
	}
	c.currentJar().SetCookies(u, cookies)
}

func (c *Client) currentJar() *cookiejar.Jar {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jar
}

// CheckAPI probes provider health via GET /check-api.
func (c *Client) CheckAPI(ctx context.Context) (CheckResult, error) {
	var out CheckResult
	err := c.do(ctx, http.MethodGet, "/check-api", nil, &out)
	return out, err
}

// VerifyKeys tests candidate keys via POST /verify-api without persisting them.
func (c *Client) VerifyKeys(ctx context.Context, keys Keys) (VerifyResult, error) {
	var out VerifyResult
	err := c.do(ctx, http.MethodPost, "/verify-api", keys, &out)
	return out, err
}

// UpdateKeys persists keys via POST /update-api-keys. A logical failure
// reported by the server comes back as an UpdateResult whose Status is not
// success, even when the server pairs it with an error status code.
func (c *Client) UpdateKeys(ctx context.Context, keys Keys) (UpdateResult, error) {
	var out UpdateResult
	err := c.do(ctx, http.MethodPost, "/update-api-keys", keys, &out)
	if msg, ok := ServerMessage(err); ok {
		return UpdateResult{Status: StatusError, Message: msg}, nil
	}
	return out, err
}

// Chat sends one conversation turn via POST /chat.
func (c *Client) Chat(ctx context.Context, message string) (ChatReply, error) {
	var out ChatReply
	err := c.do(ctx, http.MethodPost, "/chat", ChatRequest{Message: message}, &out)
	return out, err
}

// Download fetches the current email via GET /download.
func (c *Client) Download(ctx context.Context) (DownloadResult, error) {
	var out DownloadResult
	err := c.do(ctx, http.MethodGet, "/download", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := *c.httpClient
	hc.Jar = c.currentJar()
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls a human readable message out of an error body.
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	return ""
}
