package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			tag := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
			if tag == "-" {
				return ""
			}
			if tag != "" {
				return tag
			}
		}
		return f.Name
	})
	return v
}

// errBadRequest se devuelve cuando el cuerpo o la query no se pueden decodificar.
var errBadRequest = errors.New("cuerpo inválido")

// requestError agrupa los errores de validación por campo.
type requestError struct {
	details map[string]string
}

func (e *requestError) Error() string { return "datos inválidos" }

// parseBody decodifica el JSON del cuerpo y valida sus tags.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return errBadRequest
	}
	return validateStruct(dest)
}

// parseQuery decodifica los parámetros de la query y valida sus tags.
func parseQuery(c *fiber.Ctx, dest any) error {
	if err := c.QueryParser(dest); err != nil {
		return errBadRequest
	}
	return validateStruct(dest)
}

func validateStruct(dest any) error {
	err := validate.Struct(dest)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{details: map[string]string{"error": err.Error()}}
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe)] = validationMessage(fe)
	}
	return &requestError{details: details}
}

// fieldPath quita el nombre del struct raíz: "QuoteRequest.items[0].name" → "items[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "datetime":
		return "debe tener el formato AAAA-MM-DD"
	}
	return "no es válido"
}

// badRequest responde 400 con el detalle del error de decodificación o validación.
func badRequest(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: re.details,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
