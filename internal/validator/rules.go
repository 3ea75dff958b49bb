package validator

import (
	"log"

	"benchracers_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Правило не зарегистрировалось - приложение не должно стартовать
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-region", validateRegion)
	mustRegister("is-category", validateCategory)
	mustRegister("is-award-type", validateAwardType)
}

func validateRegion(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые проверяет 'required'
	}
	for _, r := range models.AllRegions {
		if models.Region(value) == r {
			return true
		}
	}
	return false
}

func validateCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, c := range models.AllCategories {
		if models.Category(value) == c {
			return true
		}
	}
	return false
}

func validateAwardType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AwardType(value) {
	case models.AwardFirstEntry, models.AwardTenUpvotes, models.AwardHundredUpvotes,
		models.AwardEditorsChoice, models.AwardCommunityPillar:
		return true
	default:
		return false
	}
}
