package service

import (
	"sort"
	"strings"

	"me-python-boutique/models"
	"me-python-boutique/utils"
)

// ParseSortMode maps a query value to a SortMode, defaulting to source order
func ParseSortMode(raw string) models.SortMode {
	switch mode := models.SortMode(strings.TrimSpace(raw)); mode {
	case models.SortPriceDesc, models.SortPriceAsc, models.SortListingTime,
		models.SortBirthDateYoung, models.SortBirthDateOld:
		return mode
	default:
		return models.SortDefault
	}
}

// FilterAndSort returns a new slice: Sold entries are dropped unless
// ShowSoldOut is set, then a stable sort by the requested mode is applied
func FilterAndSort(snakes []models.Snake, query models.CatalogQuery) []models.Snake {
	out := make([]models.Snake, 0, len(snakes))
	for _, s := range snakes {
		if !query.ShowSoldOut && s.IsSold() {
			continue
		}
		out = append(out, s)
	}

	switch query.Sort {
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case models.SortListingTime:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].CreatedAt, out[j].CreatedAt
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	case models.SortBirthDateYoung:
		sort.SliceStable(out, func(i, j int) bool { return hatchLess(out[i], out[j], true) })
	case models.SortBirthDateOld:
		sort.SliceStable(out, func(i, j int) bool { return hatchLess(out[i], out[j], false) })
	}
	return out
}

// hatchLess orders by hatch date; unknown or unparseable dates always go last
func hatchLess(a, b models.Snake, youngestFirst bool) bool {
	da, okA := utils.ParseHatchDate(a.HatchDate)
	db, okB := utils.ParseHatchDate(b.HatchDate)
	switch {
	case !okA:
		return false
	case !okB:
		return true
	case youngestFirst:
		return da.After(db)
	default:
		return da.Before(db)
	}
}
