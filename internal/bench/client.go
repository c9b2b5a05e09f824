package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chuanjin/toonbench/internal/httpapi"
	"github.com/cockroachdb/errors"
)

// Client posts payloads to a running toonbench server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Parse sends content to the parser registered as format and returns the
// server's envelope. A non-200 answer is an error.
func (c *Client) Parse(ctx context.Context, format, content string) (httpapi.ParseResponse, error) {
	var out httpapi.ParseResponse

	body, err := json.Marshal(httpapi.ParseRequest{Content: &content})
	if err != nil {
		return out, errors.Wrap(err, "encode request")
	}

	endpoint := c.baseURL + "/parse/" + url.PathEscape(format)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return out, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, errors.Wrapf(err, "POST %s", endpoint)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, errors.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return out, errors.Newf("server responded with %s: %s", resp.Status, e.Error)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.Wrap(err, "invalid response")
	}
	return out, nil
}
