package validator

import (
	"testing"

	"benchracers_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

type regionProbe struct {
	Region models.Region `json:"region" validate:"is-region"`
}

type categoryProbe struct {
	Category models.Category `json:"category" validate:"is-category"`
}

type awardProbe struct {
	AwardType models.AwardType `json:"awardType" validate:"is-award-type"`
}

func TestRegionRule(t *testing.T) {
	t.Parallel()
	v := New()

	for _, r := range models.AllRegions {
		assert.NoError(t, v.Validate(&regionProbe{Region: r}), "регион %s должен проходить", r)
	}

	// Пустое значение пропускается, его проверяет 'required'
	assert.NoError(t, v.Validate(&regionProbe{}))

	err := v.Validate(&regionProbe{Region: "siberia"})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	// Сообщение привязано к json-имени поля
	assert.Contains(t, vErr.Errors, "region")
}

func TestCategoryRule(t *testing.T) {
	t.Parallel()
	v := New()

	for _, c := range models.AllCategories {
		assert.NoError(t, v.Validate(&categoryProbe{Category: c}))
	}

	assert.Error(t, v.Validate(&categoryProbe{Category: "spaceship"}))
}

func TestAwardTypeRule(t *testing.T) {
	t.Parallel()
	v := New()

	assert.NoError(t, v.Validate(&awardProbe{AwardType: models.AwardEditorsChoice}))
	assert.Error(t, v.Validate(&awardProbe{AwardType: "participation_trophy"}))
}
