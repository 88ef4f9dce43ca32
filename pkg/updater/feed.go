package updater

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/relayops/mailwatch/pkg/models"
)

// ErrMalformedFeed indicates the feed body parsed as JSON but lacked the
// top-level items list.
var ErrMalformedFeed = errors.New("feed document has no items field")

// FeedSource fetches the upstream IP range document and detects changes.
type FeedSource interface {
	// FetchChanged returns the parsed document when the feed content differs
	// from lastHash, or nil when it is unchanged.
	FetchChanged(ctx context.Context, lastHash string) (*models.FeedDocument, error)
}

// FeedClient is the HTTP implementation of FeedSource. Change detection is
// an MD5 over the raw response body; a content fingerprint, not a security
// measure.
type FeedClient struct {
	// The URL of the IP range feed
	// e.g. "https://ip-ranges.atlassian.com/"
	URL string

	client *http.Client
}

func NewFeedClient(url string, timeout time.Duration) FeedClient {
	return FeedClient{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c FeedClient) FetchChanged(ctx context.Context, lastHash string) (*models.FeedDocument, error) {
	req, err := http.NewRequest(http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	response, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch feed")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, errors.Errorf("feed returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read feed body")
	}

	hash := fmt.Sprintf("%x", md5.Sum(body))
	if lastHash != "" && hash == lastHash {
		return nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "could not parse feed body")
	}

	items, ok := raw["items"]
	if !ok {
		return nil, ErrMalformedFeed
	}

	doc := models.FeedDocument{ContentHash: hash}
	if err := json.Unmarshal(items, &doc.Items); err != nil {
		return nil, errors.Wrap(err, "could not parse feed items")
	}

	return &doc, nil
}

// ExtractEmailRanges filters the feed down to the CIDRs postfix should
// accept mail from: email product, egress direction, non-empty cidr.
// The result is sorted ascending; duplicates are preserved as-is.
func ExtractEmailRanges(doc *models.FeedDocument) []string {
	ranges := []string{}
	for _, item := range doc.Items {
		if contains(item.Product, "email") && contains(item.Direction, "egress") && item.CIDR != "" {
			ranges = append(ranges, item.CIDR)
		}
	}
	sort.Strings(ranges)
	return ranges
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
