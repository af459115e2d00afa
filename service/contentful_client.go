package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"me-python-boutique/config"
	"me-python-boutique/models"
)

const (
	contentfulPageSize = 1000
	// how many link hops are followed when inlining includes
	maxLinkDepth = 4
)

// ContentfulClient reads entries from the Contentful Content Delivery API
// Implements ContentStoreClientInterface
type ContentfulClient struct {
	cfg        config.ContentfulConfig
	httpClient *http.Client
	enabled    bool
}

// Ensure ContentfulClient implements ContentStoreClientInterface
var _ ContentStoreClientInterface = (*ContentfulClient)(nil)

// NewContentfulClient creates a client. Missing credentials yield a disabled
// client that always returns no entries.
func NewContentfulClient(cfg config.ContentfulConfig, httpClient *http.Client) *ContentfulClient {
	if !cfg.Enabled() {
		log.Printf("⚠️  Contentful credentials are missing (CONTENTFUL_SPACE_ID / CONTENTFUL_ACCESS_TOKEN), remote catalog disabled")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &ContentfulClient{
		cfg:        cfg,
		httpClient: httpClient,
		enabled:    cfg.Enabled(),
	}
}

// Enabled reports whether credentials were supplied
func (c *ContentfulClient) Enabled() bool {
	return c.enabled
}

type entriesResponse struct {
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
	Items    []map[string]any `json:"items"`
	Includes struct {
		Entry []map[string]any `json:"Entry"`
		Asset []map[string]any `json:"Asset"`
	} `json:"includes"`
}

// FetchEntries lists every entry of contentType in the given order, with
// linked entries and assets inlined in place of their link objects
func (c *ContentfulClient) FetchEntries(ctx context.Context, contentType string, order string) ([]models.RawRecord, error) {
	if !c.enabled {
		return nil, nil
	}

	var records []models.RawRecord
	skip := 0
	for {
		page, err := c.fetchPage(ctx, contentType, order, skip)
		if err != nil {
			return nil, err
		}

		index := buildIncludeIndex(page)
		for _, item := range page.Items {
			resolved, _ := resolveLinks(item, index, 0).(map[string]any)
			if resolved == nil {
				continue
			}
			records = append(records, models.RawRecord(resolved))
		}

		skip += len(page.Items)
		if len(page.Items) == 0 || skip >= page.Total {
			break
		}
	}

	return records, nil
}

func (c *ContentfulClient) fetchPage(ctx context.Context, contentType string, order string, skip int) (*entriesResponse, error) {
	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries",
		strings.TrimRight(c.cfg.BaseURL, "/"),
		url.PathEscape(c.cfg.SpaceID),
		url.PathEscape(c.cfg.Environment))

	query := url.Values{}
	query.Set("content_type", contentType)
	if order != "" {
		query.Set("order", order)
	}
	query.Set("include", "2")
	query.Set("limit", strconv.Itoa(contentfulPageSize))
	query.Set("skip", strconv.Itoa(skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build contentful request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s entries: %w", contentType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("contentful returned status %d for %s entries: %s", resp.StatusCode, contentType, strings.TrimSpace(string(body)))
	}

	var page entriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode %s entries: %w", contentType, err)
	}
	return &page, nil
}

// buildIncludeIndex keys included records by "LinkType:id"
func buildIncludeIndex(page *entriesResponse) map[string]map[string]any {
	index := make(map[string]map[string]any, len(page.Items)+len(page.Includes.Entry)+len(page.Includes.Asset))
	add := func(linkType string, records []map[string]any) {
		for _, record := range records {
			sys, _ := record["sys"].(map[string]any)
			id, _ := sys["id"].(string)
			if id != "" {
				index[linkType+":"+id] = record
			}
		}
	}
	add("Entry", page.Items)
	add("Entry", page.Includes.Entry)
	add("Asset", page.Includes.Asset)
	return index
}

// linkKey returns the index key when v is a link object
func linkKey(v map[string]any) (string, bool) {
	sys, _ := v["sys"].(map[string]any)
	if sys == nil || sys["type"] != "Link" {
		return "", false
	}
	linkType, _ := sys["linkType"].(string)
	id, _ := sys["id"].(string)
	return linkType + ":" + id, true
}

// resolveLinks replaces link objects with the records they point to.
// Unresolvable links become nil and are dropped from arrays.
func resolveLinks(value any, index map[string]map[string]any, depth int) any {
	switch v := value.(type) {
	case map[string]any:
		if key, ok := linkKey(v); ok {
			target, found := index[key]
			if !found || depth >= maxLinkDepth {
				return nil
			}
			return resolveLinks(target, index, depth+1)
		}
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = resolveLinks(child, index, depth)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, child := range v {
			if resolved := resolveLinks(child, index, depth); resolved != nil {
				out = append(out, resolved)
			}
		}
		return out
	default:
		return v
	}
}
