package db_test

import (
	"testing"

	"github.com/avolkov/claimdesk/db"
	"github.com/avolkov/claimdesk/model"
	"github.com/stretchr/testify/assert"
)

func namedForms(pairs ...string) []model.FormDefinition {
	forms := make([]model.FormDefinition, 0, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		forms = append(forms, model.FormDefinition{Code: pairs[i], Name: pairs[i+1]})
	}

	return forms
}

func codes(forms []model.FormDefinition) []string {
	result := make([]string, 0, len(forms))
	for _, form := range forms {
		result = append(result, form.Code)
	}

	return result
}

func TestRankForms(t *testing.T) {
	forms := namedForms(
		"AHC-0913", "Physician Claim Submission",
		"AHC-1022", "Newborn Registration",
		"AHC-3310", "Provider Enrollment",
		"AHC-3317", "Provider Banking Update",
	)

	t.Run("empty term returns input untouched", func(t *testing.T) {
		assert.Equal(t, forms, db.RankForms(forms, "   "))
	})

	t.Run("substring hits beat fuzzy hits", func(t *testing.T) {
		ranked := db.RankForms(forms, "provider")

		assert.Equal(t, []string{"AHC-3310", "AHC-3317"}, codes(ranked)[:2])
	})

	t.Run("typo still finds the form", func(t *testing.T) {
		ranked := db.RankForms(forms, "Newborn Registratin")

		assert.NotEmpty(t, ranked)
		assert.Equal(t, "AHC-1022", ranked[0].Code)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		ranked := db.RankForms(forms, "PHYSICIAN")

		assert.NotEmpty(t, ranked)
		assert.Equal(t, "AHC-0913", ranked[0].Code)
	})

	t.Run("unrelated term drops everything", func(t *testing.T) {
		ranked := db.RankForms(forms, "zzzzzzzzzzzzzzzzzzzz")

		assert.Empty(t, ranked)
	})

	t.Run("code search matches exact form", func(t *testing.T) {
		ranked := db.RankForms(forms, "ahc-1022")

		assert.NotEmpty(t, ranked)
		assert.Equal(t, "AHC-1022", ranked[0].Code)
	})

	t.Run("ties break by code for stable order", func(t *testing.T) {
		ranked := db.RankForms(forms, "provider")

		assert.Equal(t, "AHC-3310", ranked[0].Code)
	})
}
