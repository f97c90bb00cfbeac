package opnsense

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nitmir/check-opnsense/pkg/models/api"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every request, including reading the body.
const DefaultTimeout = 30 * time.Second

const (
	EndpointFirmwareStatus = "core/firmware/status"
	EndpointSystemStatus   = "core/system/status"
	EndpointServiceSearch  = "core/service/search"
)

// Config describes how to reach one firewall.
type Config struct {
	Hostname  string
	Port      int
	APIKey    string
	APISecret string

	// InsecureSkipVerify disables certificate validation. The operator opts
	// into trusting whatever certificate the firewall presents.
	InsecureSkipVerify bool
	// RootCAs overrides the system pool used to verify the firewall certificate.
	RootCAs *x509.CertPool
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client performs authenticated requests against the OPNsense API.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	insecure   bool
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // explicit operator choice
		RootCAs:            cfg.RootCAs,
		MinVersion:         tls.VersionTLS12,
	}

	return &Client{
		baseURL:   fmt.Sprintf("https://%s/api/", net.JoinHostPort(cfg.Hostname, strconv.Itoa(cfg.Port))),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		insecure:  cfg.InsecureSkipVerify,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// URL returns the absolute API URL of an endpoint.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + strings.TrimPrefix(endpoint, "/")
}

// Fetch sends one request and decodes the JSON body into out. Only GET and
// POST are supported; query is sent with GET, form with POST.
func (c *Client) Fetch(ctx context.Context, method, endpoint string, query, form url.Values, out any) error {
	logger := zerolog.Ctx(ctx)
	target := c.URL(endpoint)

	var body io.Reader
	switch method {
	case http.MethodGet:
		if len(query) > 0 {
			target += "?" + query.Encode()
		}
	case http.MethodPost:
		body = strings.NewReader(form.Encode())
	default:
		return &RequestError{Kind: KindMethod, Method: method, URL: target}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &RequestError{Kind: KindConnect, Method: method, URL: target, Cause: err}
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if c.insecure {
		logger.Debug().Str("url", target).Msg("certificate validation disabled")
	}
	logger.Debug().Str("method", method).Str("url", target).Msg("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := classifyTransportError(err)
		logger.Debug().Err(err).Str("kind", kind.String()).Msg("request failed")
		return &RequestError{Kind: kind, Method: method, URL: target, Cause: err}
	}
	defer resp.Body.Close()

	logger.Debug().Int("status", resp.StatusCode).Str("url", target).Msg("received response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RequestError{
			Kind:       KindStatus,
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
		}
	}

	// Client.Timeout also covers the body, so a failed read is a transport
	// problem and only the JSON itself can be a decode problem.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		kind := classifyTransportError(err)
		logger.Debug().Err(err).Str("kind", kind.String()).Msg("reading response failed")
		return &RequestError{Kind: kind, Method: method, URL: target, StatusCode: resp.StatusCode, Cause: err}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Kind: KindDecode, Method: method, URL: target, StatusCode: resp.StatusCode, Cause: err}
	}
	return nil
}

// FirmwareStatus reads the cached firmware update state.
func (c *Client) FirmwareStatus(ctx context.Context) (*api.FirmwareStatus, error) {
	var status api.FirmwareStatus
	if err := c.Fetch(ctx, http.MethodGet, EndpointFirmwareStatus, nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RefreshFirmwareStatus asks the firewall to check for updates and returns
// the resulting state.
func (c *Client) RefreshFirmwareStatus(ctx context.Context) (*api.FirmwareStatus, error) {
	var status api.FirmwareStatus
	if err := c.Fetch(ctx, http.MethodPost, EndpointFirmwareStatus, nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) SystemStatus(ctx context.Context) (*api.SystemStatus, error) {
	var status api.SystemStatus
	if err := c.Fetch(ctx, http.MethodGet, EndpointSystemStatus, nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) SearchServices(ctx context.Context) (*api.ServiceSearch, error) {
	var search api.ServiceSearch
	if err := c.Fetch(ctx, http.MethodGet, EndpointServiceSearch, nil, nil, &search); err != nil {
		return nil, err
	}
	return &search, nil
}
