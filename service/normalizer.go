package service

import (
	"context"
	"log"
	"strings"
	"time"

	"me-python-boutique/models"
	"me-python-boutique/utils"
)

const (
	snakeContentType  = "snake"
	vendorContentType = "vendor"
	newestFirst       = "-sys.createdAt"
)

// Remote field names, tried in order. Older records were created under
// earlier schema revisions, so every candidate stays in the list.
var (
	snakeIDFields      = []string{"id", "snakeId", "code"}
	vendorIDFields     = []string{"id", "vendorId"}
	snakeImageFields   = []string{"photo", "image", "images"}
	snakeGalleryFields = []string{"gallery", "photos", "images"}
	appendixFileFields = []string{"appendixFiles", "appendix", "files"}
	appendixLabelField = []string{"appendixLabel", "appendixText"}
	vendorNameFields   = []string{"name", "title"}
	vendorURLFields    = []string{"url", "website", "link"}
)

// Normalizer fetches raw records from the content store and maps them into
// Snake and Vendor values
type Normalizer struct {
	client ContentStoreClientInterface
}

// NewNormalizer creates a Normalizer reading through client
func NewNormalizer(client ContentStoreClientInterface) *Normalizer {
	return &Normalizer{client: client}
}

// FetchSnakes returns every snake, newest first. A disabled client or a
// failed fetch yields an empty list; the error is logged, never returned.
func (n *Normalizer) FetchSnakes(ctx context.Context) []models.Snake {
	records := n.fetch(ctx, snakeContentType, newestFirst)
	snakes := make([]models.Snake, 0, len(records))
	for _, record := range records {
		snakes = append(snakes, NormalizeSnake(record))
	}
	return snakes
}

// FetchVendors returns every vendor, with the same failure policy as FetchSnakes
func (n *Normalizer) FetchVendors(ctx context.Context) []models.Vendor {
	records := n.fetch(ctx, vendorContentType, "")
	vendors := make([]models.Vendor, 0, len(records))
	for _, record := range records {
		vendors = append(vendors, NormalizeVendor(record))
	}
	return vendors
}

func (n *Normalizer) fetch(ctx context.Context, contentType string, order string) []models.RawRecord {
	if n.client == nil || !n.client.Enabled() {
		log.Printf("⚠️  No content store client available, returning no %s records", contentType)
		return nil
	}
	records, err := n.client.FetchEntries(ctx, contentType, order)
	if err != nil {
		log.Printf("❌ Error fetching %s records from content store: %v", contentType, err)
		return nil
	}
	log.Printf("✓ Fetched %d %s records from content store", len(records), contentType)
	return records
}

// NormalizeSnake maps one raw record into a Snake. It never fails: every
// missing or malformed field gets its documented default.
func NormalizeSnake(raw models.RawRecord) models.Snake {
	fields := raw.Fields()
	sys := raw.Sys()

	originals := resolveImages(fields, snakeImageFields)
	originals = mergeUnique(originals, resolveImages(fields, snakeGalleryFields))
	if len(originals) == 0 {
		originals = []string{models.PlaceholderImageURL}
	}
	images := utils.OptimizeImageURLs(originals)

	return models.Snake{
		ID:               firstID(fields, sys, snakeIDFields),
		Morph:            stringOr(fields["morph"], models.UnknownMorph),
		ScientificName:   stringOr(fields["scientificName"], models.DefaultScientificName),
		Price:            utils.CoercePrice(fields["price"]),
		Gender:           utils.MapGender(fields["gender"]),
		Weight:           nonNegative(utils.CoerceNumber(fields["weight"])),
		HatchDate:        stringOr(fields["hatchDate"], models.UnknownHatchDate),
		Genetics:         stringList(fields["genetics"]),
		Diet:             stringOr(fields["diet"], models.DefaultDiet),
		Availability:     utils.MapAvailability(fields["availability"]),
		Description:      textOr(fields["description"], models.DefaultDescription),
		ImageURL:         images[0],
		Images:           images,
		OriginalImageURL: originals[0],
		OriginalImages:   originals,
		CreatedAt:        parseTimestamp(sys["createdAt"]),
	}
}

// NormalizeVendor maps one raw record into a Vendor
func NormalizeVendor(raw models.RawRecord) models.Vendor {
	fields := raw.Fields()
	sys := raw.Sys()

	var label string
	for _, name := range appendixLabelField {
		if label = strings.TrimSpace(utils.FlattenRichText(fields[name])); label != "" {
			break
		}
	}

	return models.Vendor{
		ID:            firstID(fields, sys, vendorIDFields),
		Name:          firstString(fields, vendorNameFields),
		URL:           firstString(fields, vendorURLFields),
		AppendixFiles: resolveImages(fields, appendixFileFields),
		AppendixLabel: label,
	}
}

// firstID looks for an identifier field under any casing, then the record's
// system id, then gives up with the "No ID" sentinel
func firstID(fields map[string]any, sys map[string]any, candidates []string) string {
	for _, name := range candidates {
		if id := idString(lookupFold(fields, name)); id != "" {
			return id
		}
	}
	if id := idString(sys["id"]); id != "" {
		return id
	}
	return models.NoID
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strings.TrimSpace(utils.FormatNumber(id))
	default:
		return ""
	}
}

// lookupFold finds a field whose name matches key ignoring case
func lookupFold(fields map[string]any, key string) any {
	if v, ok := fields[key]; ok {
		return v
	}
	for name, v := range fields {
		if strings.EqualFold(name, key) {
			return v
		}
	}
	return nil
}

// resolveImages returns the asset URLs of the first candidate field that
// yields at least one
func resolveImages(fields map[string]any, candidates []string) []string {
	for _, name := range candidates {
		if urls := assetURLs(fields[name]); len(urls) > 0 {
			return urls
		}
	}
	return nil
}

// assetURLs accepts a single asset, an array of assets or plain URL strings
func assetURLs(v any) []string {
	switch value := v.(type) {
	case []any:
		var urls []string
		for _, item := range value {
			if u := assetURL(item); u != "" {
				urls = append(urls, u)
			}
		}
		return urls
	default:
		if u := assetURL(value); u != "" {
			return []string{u}
		}
		return nil
	}
}

// assetURL reads fields.file.url from an asset, or takes a string as the URL.
// Only protocol-relative and absolute http(s) URLs resolve.
func assetURL(v any) string {
	var u string
	switch asset := v.(type) {
	case string:
		u = asset
	case map[string]any:
		fields, _ := asset["fields"].(map[string]any)
		file, _ := fields["file"].(map[string]any)
		u, _ = file["url"].(string)
	}
	u = utils.NormalizeAssetURL(u)
	if !isAbsoluteURL(u) {
		return ""
	}
	return u
}

func isAbsoluteURL(u string) bool {
	lower := strings.ToLower(u)
	for _, scheme := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(lower, scheme); ok {
			return rest != "" && !strings.HasPrefix(rest, "/")
		}
	}
	return false
}

func mergeUnique(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, u := range list {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
	}
	return out
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}

func textOr(v any, def string) string {
	if s := strings.TrimSpace(utils.FlattenRichText(v)); s != "" {
		return s
	}
	return def
}

func firstString(fields map[string]any, candidates []string) string {
	for _, name := range candidates {
		if s := stringOr(fields[name], ""); s != "" {
			return s
		}
	}
	return ""
}

// stringList accepts a single string, an array of strings or nothing
func stringList(v any) []string {
	switch value := v.(type) {
	case string:
		if s := strings.TrimSpace(value); s != "" {
			return []string{s}
		}
	case []any:
		list := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				list = append(list, strings.TrimSpace(s))
			}
		}
		return list
	}
	return []string{}
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func parseTimestamp(v any) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &t
}
