package validator

import (
	"log"

	"cardswap/internal/services/dto"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка сборки приложения
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'consent': согласие принимается только буквальным "yes"
	mustRegister("consent", validateConsent)
}

func validateConsent(fl validator.FieldLevel) bool {
	return fl.Field().String() == dto.ConsentAccepted
}
