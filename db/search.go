package db

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/avolkov/claimdesk/model"
)

// Forms whose best normalized distance is above this are dropped from
// search results entirely.
const maxSearchDistance = 0.6

// RankForms orders forms by how closely their code or name matches the
// search term. Substring hits always beat fuzzy-only hits; within each
// group the smaller edit distance wins, ties broken by code for a
// stable listing.
func RankForms(forms []model.FormDefinition, term string) []model.FormDefinition {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return forms
	}

	type scored struct {
		form      model.FormDefinition
		substring bool
		distance  float64
	}

	matches := make([]scored, 0, len(forms))

	for _, form := range forms {
		code := strings.ToUpper(form.Code)
		name := strings.ToUpper(form.Name)

		substring := strings.Contains(code, term) || strings.Contains(name, term)
		distance := min(normalizedDistance(code, term), normalizedDistance(name, term))

		if !substring && distance > maxSearchDistance {
			continue
		}

		matches = append(matches, scored{form: form, substring: substring, distance: distance})
	}

	slices.SortStableFunc(matches, func(a, b scored) int {
		if a.substring != b.substring {
			if a.substring {
				return -1
			}

			return 1
		}

		if c := cmp.Compare(a.distance, b.distance); c != 0 {
			return c
		}

		return cmp.Compare(a.form.Code, b.form.Code)
	})

	result := make([]model.FormDefinition, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.form)
	}

	return result
}

func normalizedDistance(value, term string) float64 {
	if len(value) == 0 && len(term) == 0 {
		return 0
	}

	dist := levenshtein.ComputeDistance(value, term)

	return float64(dist) / float64(max(len(value), len(term)))
}
