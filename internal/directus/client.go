// internal/directus/client.go
package directus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	commonhttp "tourism-chatbot/internal/common/http"
	"tourism-chatbot/internal/common/logger"
)

// pageLimit bounds every collection read.
const pageLimit = 100

// HTTPDoer is the outbound client dependency, satisfied by
// internal/common/http.Client.
type HTTPDoer interface {
	DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client reads collections from the Directus REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPDoer
	logger     logger.Logger
}

func NewClient(baseURL, token string, httpClient *commonhttp.Client, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
		logger: log.With(map[string]interface{}{
			"component": "directus",
		}),
	}
}

// fetchOutcome keeps success and unavailability distinguishable inside the
// package. The public contract coalesces unavailability to an empty result.
type fetchOutcome struct {
	records     CollectionResult
	unavailable bool
	reason      string
}

// FetchCollection reads up to pageLimit records from one collection,
// keyword-filtered when search is non-empty. Every failure (network,
// non-2xx, malformed body) is absorbed: the collection is logged as
// unavailable and an empty result is returned. It never fails its caller.
func (c *Client) FetchCollection(ctx context.Context, name, search string) CollectionResult {
	outcome := c.fetch(ctx, name, search)
	if outcome.unavailable {
		c.logger.Warn("collection unavailable, substituting empty result", map[string]interface{}{
			"collection": name,
			"reason":     outcome.reason,
		})
		return CollectionResult{}
	}
	return outcome.records
}

func (c *Client) fetch(ctx context.Context, name, search string) fetchOutcome {
	endpoint := fmt.Sprintf("%s/items/%s", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fetchOutcome{unavailable: true, reason: fmt.Sprintf("build request: %v", err)}
	}

	q := req.URL.Query()
	q.Set("limit", fmt.Sprintf("%d", pageLimit))
	if search != "" {
		q.Set("search", search)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return fetchOutcome{unavailable: true, reason: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchOutcome{unavailable: true, reason: fmt.Sprintf("read body: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return fetchOutcome{unavailable: true, reason: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fetchOutcome{unavailable: true, reason: fmt.Sprintf("unmarshal response: %v", err)}
	}

	if envelope.Data == nil {
		envelope.Data = []json.RawMessage{}
	}
	return fetchOutcome{records: CollectionResult(envelope.Data)}
}
