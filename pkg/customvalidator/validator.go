// Файл: pkg/customvalidator/validators.go

package customvalidator

import (
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("submission_status", isSubmissionStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}

	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

// isSubmissionStatus проверяет статус обращения: он всегда одно из
// четырёх перечислимых значений жизненного цикла.
func isSubmissionStatus(fl validator.FieldLevel) bool {
	statuses := []string{"new", "read", "replied", "archived"}
	return slices.Contains(statuses, fl.Field().String())
}
