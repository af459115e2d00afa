package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"me-python-boutique/models"
	"me-python-boutique/repository"
)

type stubSnapshots struct {
	mu     sync.Mutex
	saved  [][]models.Snake
	stored []models.Snake
	err    error
}

func (s *stubSnapshots) Save(ctx context.Context, source models.CatalogSource, snakes []models.Snake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, snakes)
	return nil
}

func (s *stubSnapshots) Latest(ctx context.Context) ([]models.Snake, time.Time, error) {
	if s.err != nil {
		return nil, time.Time{}, s.err
	}
	if len(s.stored) == 0 {
		return nil, time.Time{}, repository.ErrNoSnapshot
	}
	return s.stored, time.Now(), nil
}

func snakeRecord(id, morph string, price any, availability string) models.RawRecord {
	return models.RawRecord{
		"sys": map[string]any{"id": "sys-" + id},
		"fields": map[string]any{
			"id":           id,
			"morph":        morph,
			"price":        price,
			"availability": availability,
		},
	}
}

func newFallback(t *testing.T) *FallbackCatalog {
	t.Helper()
	fb, err := NewFallbackCatalog(nil, "")
	require.NoError(t, err)
	return fb
}

func TestRefreshUsesRemoteAndStoresSnapshot(t *testing.T) {
	store := &stubContentStore{enabled: true, records: map[string][]models.RawRecord{
		"snake":  {snakeRecord("R-1", "Clown", 1000, "Available")},
		"vendor": {{"fields": map[string]any{"id": "V1", "name": "Frozen Mice Co"}}},
	}}
	snapshots := &stubSnapshots{}
	svc := NewCatalogService(NewNormalizer(store), snapshots, newFallback(t))

	source := svc.Refresh(context.Background())

	assert.Equal(t, models.SourceRemote, source)
	page := svc.List(models.CatalogQuery{})
	require.Equal(t, 1, page.Count)
	assert.Equal(t, "R-1", page.Snakes[0].ID)
	require.Len(t, snapshots.saved, 1)
	assert.Len(t, svc.Vendors(), 1)
}

func TestRefreshFallsBackToSnapshot(t *testing.T) {
	store := &stubContentStore{enabled: true, err: errors.New("timeout")}
	snapshots := &stubSnapshots{stored: []models.Snake{{ID: "S-1", Morph: "Pastel"}}}
	svc := NewCatalogService(NewNormalizer(store), snapshots, newFallback(t))

	source := svc.Refresh(context.Background())

	assert.Equal(t, models.SourceSnapshot, source)
	snake, err := svc.Get("s-1")
	require.NoError(t, err)
	assert.Equal(t, "Pastel", snake.Morph)
	assert.Empty(t, snapshots.saved)
}

func TestRefreshFallsBackToBundledDataset(t *testing.T) {
	svc := NewCatalogService(NewNormalizer(&stubContentStore{enabled: false}), &stubSnapshots{}, newFallback(t))

	source := svc.Refresh(context.Background())
	assert.Equal(t, models.SourceFallback, source)

	all := svc.List(models.CatalogQuery{ShowSoldOut: true})
	assert.Equal(t, 6, all.Count)
	assert.Equal(t, "BP-001", all.Snakes[0].ID)

	visible := svc.List(models.CatalogQuery{})
	assert.Equal(t, 5, visible.Count)
	for _, s := range visible.Snakes {
		assert.NotEqual(t, models.AvailabilitySold, s.Availability)
	}
}

func TestRefreshSnapshotErrorStillFallsBack(t *testing.T) {
	snapshots := &stubSnapshots{err: errors.New("relation does not exist")}
	svc := NewCatalogService(NewNormalizer(nil), snapshots, newFallback(t))

	assert.Equal(t, models.SourceFallback, svc.Refresh(context.Background()))
	assert.NotZero(t, svc.List(models.CatalogQuery{}).Count)
}

func TestRefreshWithoutAnySource(t *testing.T) {
	svc := NewCatalogService(NewNormalizer(nil), nil, nil)

	assert.Equal(t, models.SourceFallback, svc.Refresh(context.Background()))
	page := svc.List(models.CatalogQuery{})
	assert.Equal(t, 0, page.Count)
	assert.NotNil(t, page.Snakes)
}

func TestGetMissIsNotFound(t *testing.T) {
	svc := NewCatalogService(NewNormalizer(nil), nil, newFallback(t))
	svc.Refresh(context.Background())

	_, err := svc.Get("BP-999")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Vendor("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInquiryText(t *testing.T) {
	assert.Equal(t, "你好 我想詢問 母Pastel (BP-009)",
		InquiryText(models.Snake{ID: "BP-009", Morph: "Pastel", Gender: models.GenderFemale}))
	assert.Equal(t, "你好 我想詢問 公Clown (BP-010)",
		InquiryText(models.Snake{ID: "BP-010", Morph: "Clown", Gender: models.GenderMale}))
}

func TestConcurrentRefreshAndRead(t *testing.T) {
	store := &stubContentStore{enabled: true, records: map[string][]models.RawRecord{
		"snake": {snakeRecord("R-1", "Clown", 1000, "Available")},
	}}
	svc := NewCatalogService(NewNormalizer(store), nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.Refresh(context.Background())
		}()
		go func() {
			defer wg.Done()
			_ = svc.List(models.CatalogQuery{Sort: models.SortPriceAsc})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, svc.List(models.CatalogQuery{}).Count)
}

func TestStartScheduleRejectsBadCron(t *testing.T) {
	svc := NewCatalogService(NewNormalizer(nil), nil, nil)

	assert.NoError(t, svc.StartSchedule(context.Background(), ""))
	assert.Error(t, svc.StartSchedule(context.Background(), "every tuesday"))

	require.NoError(t, svc.StartSchedule(context.Background(), "@every 1h"))
	svc.Stop()
}
