// Package validation valida los DTO de entrada con etiquetas `validate:` de go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Empleados-api/internal/domain"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Los errores usan el nombre JSON del campo.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		// decimal.Decimal llega a las reglas como su texto exacto, sin pasar por float64.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("money", validateMoney)
		instance = v
	})
	return instance
}

// Importe monetario: NUMERIC(18,2), no negativo.
const (
	moneyScale         = 2
	moneyIntegerDigits = 16
)

var moneyLimit = decimal.New(1, moneyIntegerDigits)

// validateMoney acepta importes >= 0 con como máximo 2 decimales y 16 dígitos enteros.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Sign() >= 0 && d.LessThan(moneyLimit) && d.Equal(d.Truncate(moneyScale))
}

// Struct valida s. Devuelve un error que envuelve domain.ErrInvalidInput con el detalle
// del primer campo inválido.
func Struct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describe(verrs[0]))
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", fe.Field())
	case "email":
		return fmt.Sprintf("%s no es un email válido", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s debe ser como mínimo %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s debe ser como máximo %s", fe.Field(), fe.Param())
	case "money":
		return fmt.Sprintf("%s debe ser un importe no negativo con hasta %d enteros y %d decimales", fe.Field(), moneyIntegerDigits, moneyScale)
	case "datetime":
		return fmt.Sprintf("%s debe tener formato %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s no cumple la regla %s", fe.Field(), fe.Tag())
	}
}
