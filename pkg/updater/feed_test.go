package updater

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/relayops/mailwatch/pkg/models"
)

const feedBody = `{"items":[` +
	`{"product":["email"],"direction":["egress"],"cidr":"10.0.0.0/8"},` +
	`{"product":["jira"],"direction":["egress"],"cidr":"10.1.0.0/16"}]}`

func feedServer(body string, status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func TestFetchChangedFirstFetch(t *testing.T) {
	server := feedServer(feedBody, http.StatusOK)
	defer server.Close()

	client := NewFeedClient(server.URL, time.Second)
	doc, err := client.FetchChanged(context.Background(), "")

	assert.Nil(t, err)
	assert.NotNil(t, doc)
	assert.Len(t, doc.Items, 2)
	assert.Equal(t, fmt.Sprintf("%x", md5.Sum([]byte(feedBody))), doc.ContentHash)
}

func TestFetchChangedUnchangedBody(t *testing.T) {
	server := feedServer(feedBody, http.StatusOK)
	defer server.Close()

	client := NewFeedClient(server.URL, time.Second)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(feedBody)))

	doc, err := client.FetchChanged(context.Background(), hash)

	assert.Nil(t, err)
	assert.Nil(t, doc, "unchanged feed should yield no document")
}

func TestFetchChangedDifferentHash(t *testing.T) {
	server := feedServer(feedBody, http.StatusOK)
	defer server.Close()

	client := NewFeedClient(server.URL, time.Second)
	doc, err := client.FetchChanged(context.Background(), "d41d8cd98f00b204e9800998ecf8427e")

	assert.Nil(t, err)
	assert.NotNil(t, doc)
}

func TestFetchChangedNon2xx(t *testing.T) {
	server := feedServer("", http.StatusBadGateway)
	defer server.Close()

	client := NewFeedClient(server.URL, time.Second)
	doc, err := client.FetchChanged(context.Background(), "")

	assert.Nil(t, doc)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchChangedMalformedJSON(t *testing.T) {
	server := feedServer("not json", http.StatusOK)
	defer server.Close()

	client := NewFeedClient(server.URL, time.Second)
	doc, err := client.FetchChanged(context.Background(), "")

	assert.Nil(t, doc)
	assert.NotNil(t, err)
}

func TestFetchChangedMissingItems(t *testing.T) {
	server := feedServer(`{"ranges":[]}`, http.StatusOK)
	defer server.Close()

	client := NewFeedClient(server.URL, time.Second)
	doc, err := client.FetchChanged(context.Background(), "")

	assert.Nil(t, doc)
	assert.Equal(t, ErrMalformedFeed, err)
}

func TestFetchChangedConnectionRefused(t *testing.T) {
	server := feedServer("", http.StatusOK)
	server.Close()

	client := NewFeedClient(server.URL, time.Second)
	doc, err := client.FetchChanged(context.Background(), "")

	assert.Nil(t, doc)
	assert.NotNil(t, err)
}

func TestExtractEmailRanges(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.IPRangeItem{
			{Product: []string{"email"}, Direction: []string{"egress"}, CIDR: "10.0.0.0/8"},
			{Product: []string{"jira"}, Direction: []string{"egress"}, CIDR: "10.1.0.0/16"},
		},
	}

	assert.Equal(t, []string{"10.0.0.0/8"}, ExtractEmailRanges(doc))
}

func TestExtractEmailRangesFiltersAndSorts(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.IPRangeItem{
			{Product: []string{"email", "jira"}, Direction: []string{"egress"}, CIDR: "192.168.0.0/24"},
			{Product: []string{"email"}, Direction: []string{"ingress"}, CIDR: "172.16.0.0/12"},
			{Product: []string{"email"}, Direction: []string{"ingress", "egress"}, CIDR: "10.0.0.0/8"},
			{Product: []string{"email"}, Direction: []string{"egress"}, CIDR: ""},
		},
	}

	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.0/24"}, ExtractEmailRanges(doc))
}

func TestExtractEmailRangesPreservesDuplicates(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.IPRangeItem{
			{Product: []string{"email"}, Direction: []string{"egress"}, CIDR: "10.0.0.0/8"},
			{Product: []string{"email"}, Direction: []string{"egress"}, CIDR: "10.0.0.0/8"},
		},
	}

	assert.Equal(t, []string{"10.0.0.0/8", "10.0.0.0/8"}, ExtractEmailRanges(doc))
}

func TestExtractEmailRangesEmpty(t *testing.T) {
	doc := &models.FeedDocument{
		Items: []models.IPRangeItem{
			{Product: []string{"jira"}, Direction: []string{"egress"}, CIDR: "10.1.0.0/16"},
		},
	}

	assert.Empty(t, ExtractEmailRanges(doc))
}
