package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"me-python-boutique/models"
	"me-python-boutique/service"
)

// newTestCatalog returns a catalog loaded from the bundled fallback dataset
func newTestCatalog(t *testing.T) *service.CatalogService {
	t.Helper()
	fallback, err := service.NewFallbackCatalog(nil, "")
	require.NoError(t, err)
	catalog := service.NewCatalogService(service.NewNormalizer(nil), nil, fallback)
	catalog.Refresh(context.Background())
	return catalog
}

func doRequest(t *testing.T, handler http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type stubStore struct {
	records map[string][]models.RawRecord
}

func (s *stubStore) Enabled() bool { return true }

func (s *stubStore) FetchEntries(ctx context.Context, contentType string, order string) ([]models.RawRecord, error) {
	return s.records[contentType], nil
}
