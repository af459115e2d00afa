package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"me-python-boutique/config"
)

const entriesFixture = `{
  "total": 1, "skip": 0, "limit": 1000,
  "items": [{
    "sys": {"id": "e1", "createdAt": "2024-01-02T03:04:05.000Z"},
    "fields": {
      "morph": "Banana Clown",
      "photo": [
        {"sys": {"type": "Link", "linkType": "Asset", "id": "a1"}},
        {"sys": {"type": "Link", "linkType": "Asset", "id": "missing"}}
      ],
      "vendor": {"sys": {"type": "Link", "linkType": "Entry", "id": "v1"}}
    }
  }],
  "includes": {
    "Asset": [{"sys": {"id": "a1"}, "fields": {"file": {"url": "//images.ctfassets.net/a1.jpg"}}}],
    "Entry": [{"sys": {"id": "v1"}, "fields": {"name": "Urban Reptiles"}}]
  }
}`

func testContentfulConfig(baseURL string) config.ContentfulConfig {
	return config.ContentfulConfig{
		SpaceID:     "space",
		AccessToken: "token",
		Environment: "master",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
	}
}

func TestContentfulClientFetchEntries(t *testing.T) {
	var gotPath, gotAuth, gotType, gotOrder string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.URL.Query().Get("content_type")
		gotOrder = r.URL.Query().Get("order")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(entriesFixture))
	}))
	defer server.Close()

	client := NewContentfulClient(testContentfulConfig(server.URL), server.Client())
	require.True(t, client.Enabled())

	records, err := client.FetchEntries(context.Background(), "snake", "-sys.createdAt")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "/spaces/space/environments/master/entries", gotPath)
	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "snake", gotType)
	assert.Equal(t, "-sys.createdAt", gotOrder)

	fields := records[0].Fields()
	photos, ok := fields["photo"].([]any)
	require.True(t, ok)
	require.Len(t, photos, 1, "unresolved link is dropped")

	snake := NormalizeSnake(records[0])
	assert.Equal(t, "https://images.ctfassets.net/a1.jpg", snake.OriginalImageURL)
	assert.Equal(t, "e1", snake.ID)

	vendor, ok := fields["vendor"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Urban Reptiles", vendor["fields"].(map[string]any)["name"])
}

func TestContentfulClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"The access token you sent could not be found"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewContentfulClient(testContentfulConfig(server.URL), server.Client())
	_, err := client.FetchEntries(context.Background(), "snake", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestContentfulClientPaging(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Query().Get("skip") == "0" {
			w.Write([]byte(`{"total": 2, "items": [{"sys": {"id": "one"}, "fields": {}}]}`))
			return
		}
		w.Write([]byte(`{"total": 2, "items": [{"sys": {"id": "two"}, "fields": {}}]}`))
	}))
	defer server.Close()

	client := NewContentfulClient(testContentfulConfig(server.URL), server.Client())
	records, err := client.FetchEntries(context.Background(), "snake", "")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, requests)
}

func TestContentfulClientDisabled(t *testing.T) {
	client := NewContentfulClient(config.ContentfulConfig{SpaceID: "space"}, nil)
	assert.False(t, client.Enabled())

	records, err := client.FetchEntries(context.Background(), "snake", "")
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestResolveLinksStopsOnCycles(t *testing.T) {
	index := map[string]map[string]any{
		"Entry:a": {"sys": map[string]any{"id": "a"}, "fields": map[string]any{
			"next": map[string]any{"sys": map[string]any{"type": "Link", "linkType": "Entry", "id": "a"}},
		}},
	}
	link := map[string]any{"sys": map[string]any{"type": "Link", "linkType": "Entry", "id": "a"}}

	assert.NotPanics(t, func() {
		resolved := resolveLinks(link, index, 0)
		assert.NotNil(t, resolved)
	})
}
