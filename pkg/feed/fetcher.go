package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/LimuleSempai/Web-technology-project-TeamF/pkg/transit"
)

// Fetcher issues authenticated requests against the realtime feed endpoint.
// It performs no retries itself; retrying is up to the caller.
type Fetcher struct {
	FeedURL string
	APIKey  string

	client *http.Client
}

func NewFetcher(feedURL string, apiKey string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		FeedURL: feedURL,
		APIKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchSnapshot retrieves the current feed snapshot. Network failures,
// non-2xx responses and malformed bodies all come back as
// *transit.FeedFetchError.
func (f *Fetcher) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.FeedURL, nil)
	if err != nil {
		return nil, &transit.FeedFetchError{URL: f.FeedURL, Err: err}
	}

	req.Header.Set("x-api-key", f.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &transit.FeedFetchError{URL: f.FeedURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &transit.FeedFetchError{URL: f.FeedURL, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &transit.FeedFetchError{
			URL:        f.FeedURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("provider returned %s: %s", resp.Status, trimBody(body)),
		}
	}

	if isProtobufResponse(resp.Header.Get("Content-Type")) {
		snapshot, err := decodeProtobufSnapshot(body)
		if err != nil {
			return nil, &transit.FeedFetchError{URL: f.FeedURL, StatusCode: resp.StatusCode, Err: err}
		}
		return snapshot, nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, &transit.FeedFetchError{URL: f.FeedURL, StatusCode: resp.StatusCode, Err: err}
	}

	log.Debug().
		Int("entities", len(snapshot.Entities)).
		Str("timestamp", snapshot.Header.Timestamp.String()).
		Msg("Fetched realtime snapshot")

	return &snapshot, nil
}

func isProtobufResponse(contentType string) bool {
	return strings.Contains(contentType, "application/x-protobuf") ||
		strings.Contains(contentType, "application/octet-stream")
}

func trimBody(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
