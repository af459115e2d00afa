package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"me-python-boutique/models"
)

// normalizeToken folds case and drops whitespace, hyphens and underscores so
// "On Hold", "on  hold", "ON-HOLD" and "OnHold" all become "onhold"
func normalizeToken(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return r
	}, folded)
}

var availabilityMap = map[string]models.Availability{
	"available": models.AvailabilityAvailable,
	"instock":   models.AvailabilityAvailable,
	"forsale":   models.AvailabilityAvailable,
	"現貨":        models.AvailabilityAvailable,
	"onhold":    models.AvailabilityOnHold,
	"hold":      models.AvailabilityOnHold,
	"reserved":  models.AvailabilityOnHold,
	"預訂中":       models.AvailabilityOnHold,
	"保留":        models.AvailabilityOnHold,
	"sold":      models.AvailabilitySold,
	"soldout":   models.AvailabilitySold,
	"已售出":       models.AvailabilitySold,
	"preorder":  models.AvailabilityPreOrder,
	"預購":        models.AvailabilityPreOrder,
}

// MapAvailability maps a remote availability value to the fixed vocabulary.
// Anything that is not a recognized string maps to Available.
func MapAvailability(raw any) models.Availability {
	s, ok := raw.(string)
	if !ok {
		return models.AvailabilityAvailable
	}
	if availability, exists := availabilityMap[normalizeToken(s)]; exists {
		return availability
	}
	return models.AvailabilityAvailable
}

var genderMap = map[string]models.Gender{
	"male":   models.GenderMale,
	"m":      models.GenderMale,
	"公":      models.GenderMale,
	"♂":      models.GenderMale,
	"female": models.GenderFemale,
	"f":      models.GenderFemale,
	"母":      models.GenderFemale,
	"♀":      models.GenderFemale,
}

// MapGender maps a remote gender value to Male or Female, defaulting to Male
func MapGender(raw any) models.Gender {
	s, ok := raw.(string)
	if !ok {
		return models.GenderMale
	}
	if gender, exists := genderMap[normalizeToken(s)]; exists {
		return gender
	}
	return models.GenderMale
}

// GenderLabel returns the short label used in listings and inquiry text
func GenderLabel(g models.Gender) string {
	if g == models.GenderFemale {
		return "母"
	}
	return "公"
}

// AvailabilityLabel returns the storefront badge text for a status
func AvailabilityLabel(a models.Availability) string {
	switch a {
	case models.AvailabilityOnHold:
		return "預訂中"
	case models.AvailabilitySold:
		return "已售出"
	case models.AvailabilityPreOrder:
		return "預購"
	default:
		return "現貨"
	}
}
