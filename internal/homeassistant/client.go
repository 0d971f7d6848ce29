// Package homeassistant publishes extracted session data to a Home
// Assistant instance over its REST API.
package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/splogin/splogin/internal/credential"
	sperrors "github.com/splogin/splogin/internal/errors"
	"github.com/splogin/splogin/internal/logging"
)

// defaultTimeout bounds every API call.
const defaultTimeout = 10 * time.Second

// Client talks to one Home Assistant instance, addressed by the
// remote-instance credential: username is the base URL, secret the
// bearer token.
type Client struct {
	apiURL string
	cred   *credential.Credential
	httpc  *http.Client
	log    *logging.Logger
}

// NewClient derives the API base from the credential's stored URL.
func NewClient(cred *credential.Credential, log *logging.Logger) *Client {
	return &Client{
		apiURL: strings.TrimSuffix(cred.Username, "/") + "/api/",
		cred:   cred,
		httpc:  &http.Client{Timeout: defaultTimeout},
		log:    log,
	}
}

// CheckConnectivity issues an authenticated GET against the API root.
// Connection-level failures and non-2xx responses both collapse into
// RemoteAPIError, distinguished by its Unreachable flag.
func (c *Client) CheckConnectivity(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.apiURL, nil)
}

// PublishEvent POSTs the payload as JSON to the named event endpoint.
func (c *Client) PublishEvent(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", event, err)
	}
	c.log.Debug("triggering event %s", event)
	return c.do(ctx, http.MethodPost, c.apiURL+"events/"+event, body)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("building %s request: %w", method, err)
	}

	token, err := c.cred.Secret()
	if err != nil {
		return fmt.Errorf("opening %s token: %w", c.cred.ServiceName, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return sperrors.RemoteAPIError{URL: c.apiURL, Unreachable: true, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("%s %s: %d", method, url, resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return sperrors.RemoteAPIError{URL: c.apiURL, StatusCode: resp.StatusCode}
	}
	return nil
}
