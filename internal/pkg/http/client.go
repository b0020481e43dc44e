// Package http provides the cookie-aware HTTP transport used to talk to the portal.
//
//go:generate go run -mod=mod github.com/matryer/moq -out httpmock/client_mock.go -pkg httpmock . Client
package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"math/rand"
	gohttp "net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/encoding/charmap"
)

// Compile-time interface compliance check.
var _ Client = &client{}

var (
	// DecoderWindows1252 decodes the legacy portal pages, which are served as cp1252.
	DecoderWindows1252 Decoder = func(raw []byte) string { //nolint: gochecknoglobals
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return string(raw)
		}
		return string(decoded)
	}
	DecoderUtf8 Decoder = func(raw []byte) string { //nolint: gochecknoglobals
		return string(raw)
	}
)

type Decoder func([]byte) string

// Client defines the interface for talking to the portal.
// Response bodies are returned regardless of the status code.
type Client interface {
	// Fetch performs a GET request with optional custom headers.
	Fetch(ctx context.Context, rawURL string, headers map[string]string) (string, error)
	// Post submits form as application/x-www-form-urlencoded.
	Post(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (string, error)
}

// client implements the Client interface using standard net/http.
type client struct {
	httpClient  *gohttp.Client
	timeout     time.Duration
	decoder     Decoder
	browserInfo browserInfo
}

type Option func(*client)

// WithDecoder sets the decoder for response bodies. Defaults to UTF-8.
func WithDecoder(d Decoder) Option {
	return func(c *client) {
		c.decoder = d
	}
}

// NewClient creates a new Client wrapping the provided http.Client.
// The browser identity is chosen once so that a session keeps the same User-Agent.
func NewClient(httpClient *gohttp.Client, timeout time.Duration, opts ...Option) Client {
	c := &client{
		httpClient:  httpClient,
		timeout:     timeout,
		decoder:     DecoderUtf8,
		browserInfo: randomBrowserInfo(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSessionHTTPClient returns an http.Client with its own cookie jar. Every portal session
// needs its own, jars must never be shared between concurrent sessions.
func NewSessionHTTPClient(timeout time.Duration, insecureTLS bool) (*gohttp.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	transport, ok := gohttp.DefaultTransport.(*gohttp.Transport)
	if !ok {
		return nil, fmt.Errorf("unexpected default transport type %T", gohttp.DefaultTransport)
	}
	transport = transport.Clone()
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for the portal's broken test certificates
	}

	return &gohttp.Client{
		Timeout:   timeout,
		Jar:       jar,
		Transport: transport,
	}, nil
}

// Fetch retrieves content from a URL with optional custom headers.
func (c *client) Fetch(ctx context.Context, rawURL string, headers map[string]string) (string, error) {
	return c.do(ctx, gohttp.MethodGet, rawURL, nil, headers)
}

// Post submits a form to a URL with optional custom headers.
func (c *client) Post(ctx context.Context, rawURL string, form url.Values, headers map[string]string) (string, error) {
	merged := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	for key, value := range headers {
		merged[key] = value
	}
	return c.do(ctx, gohttp.MethodPost, rawURL, strings.NewReader(form.Encode()), merged)
}

func (c *client) do(ctx context.Context, method, rawURL string, body io.Reader, headers map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	defaultHeaders := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.9,application/json",
		"Accept-Language": "nl-NL,nl;q=0.9,en-US;q=0.8,en;q=0.7",
		"Connection":      "keep-alive",
		"User-Agent":      c.browserInfo.UserAgent,
		"Sec-Ch-Ua":       c.browserInfo.SecChUa,
		"Cache-Control":   "no-cache",
	}
	for key, value := range defaultHeaders {
		req.Header.Set(key, value)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return c.decoder(raw), nil
}

// browserInfo contains User-Agent and Sec-Ch-Ua headers that must have matching versions.
type browserInfo struct {
	UserAgent string
	SecChUa   string
}

// randomBrowserInfo generates matching User-Agent and Sec-Ch-Ua headers.
// #nosec G404 // not used in security context, no strong randomness needed
func randomBrowserInfo() browserInfo {
	majorVersion := rand.Intn(25) + 120 // Version 120-144

	platforms := []func() string{
		func() string { return "Windows NT 10.0; Win64; x64" },
		func() string {
			macMajor := rand.Intn(3) + 13
			macMinor := rand.Intn(10)
			macPatch := rand.Intn(10)
			return fmt.Sprintf("Macintosh; Intel Mac OS X %d_%d_%d", macMajor, macMinor, macPatch)
		},
	}
	platform := platforms[rand.Intn(len(platforms))]()

	minorVersion := rand.Intn(10)
	patchVersion := rand.Intn(1000)
	userAgent := fmt.Sprintf(
		"Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.%d.%d Safari/537.36",
		platform, majorVersion, minorVersion, patchVersion,
	)

	secChUa := fmt.Sprintf(
		`"Chromium";v="%d", "Brave";v="%d", "Not_A Brand";v="99"`,
		majorVersion, majorVersion,
	)

	return browserInfo{
		UserAgent: userAgent,
		SecChUa:   secChUa,
	}
}
