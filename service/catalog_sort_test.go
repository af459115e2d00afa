package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"me-python-boutique/models"
)

func ids(snakes []models.Snake) []string {
	out := make([]string, len(snakes))
	for i, s := range snakes {
		out[i] = s.ID
	}
	return out
}

func at(day int) *time.Time {
	t := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

var sortFixture = []models.Snake{
	{ID: "A", Price: 3000, HatchDate: "2023-05-01", Availability: models.AvailabilityAvailable, CreatedAt: at(2)},
	{ID: "B", Price: 1000, HatchDate: "Unknown", Availability: models.AvailabilitySold, CreatedAt: nil},
	{ID: "C", Price: 3000, HatchDate: "2023-09-01", Availability: models.AvailabilityOnHold, CreatedAt: at(5)},
	{ID: "D", Price: 2000, HatchDate: "soon", Availability: models.AvailabilityPreOrder, CreatedAt: nil},
	{ID: "E", Price: 500, HatchDate: "2022-12-24", Availability: models.AvailabilityAvailable, CreatedAt: at(1)},
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, models.SortPriceAsc, ParseSortMode("priceAsc"))
	assert.Equal(t, models.SortBirthDateOld, ParseSortMode(" birthDateOld "))
	assert.Equal(t, models.SortDefault, ParseSortMode(""))
	assert.Equal(t, models.SortDefault, ParseSortMode("random"))
}

func TestFilterHidesSoldByDefault(t *testing.T) {
	assert.Equal(t, []string{"A", "C", "D", "E"}, ids(FilterAndSort(sortFixture, models.CatalogQuery{})))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, ids(FilterAndSort(sortFixture, models.CatalogQuery{ShowSoldOut: true})))
}

func TestSortModes(t *testing.T) {
	tests := []struct {
		mode models.SortMode
		want []string
	}{
		{models.SortDefault, []string{"A", "B", "C", "D", "E"}},
		{models.SortPriceDesc, []string{"A", "C", "D", "B", "E"}},
		{models.SortPriceAsc, []string{"E", "B", "D", "A", "C"}},
		{models.SortListingTime, []string{"C", "A", "E", "B", "D"}},
		{models.SortBirthDateYoung, []string{"C", "A", "E", "B", "D"}},
		{models.SortBirthDateOld, []string{"E", "A", "C", "B", "D"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := FilterAndSort(sortFixture, models.CatalogQuery{Sort: tt.mode, ShowSoldOut: true})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	before := ids(sortFixture)
	FilterAndSort(sortFixture, models.CatalogQuery{Sort: models.SortPriceAsc, ShowSoldOut: true})
	assert.Equal(t, before, ids(sortFixture))
}
