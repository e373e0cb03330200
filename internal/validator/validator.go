package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/ratings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors - ошибки валидации DTO: имя поля из json/form тега -> сообщение.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+fe[field])
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

// Validator - обертка над go-playground/validator с правилами маркетплейса.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	registerCustomRules(v)
	return &Validator{validate: v}
}

// fieldName - имя поля так, как его прислал клиент
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Validate возвращает FieldErrors, если DTO не прошел правила, и
// исходную ошибку, если валидатор сломался сам.
func (v *Validator) Validate(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	failed, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := make(FieldErrors, len(failed))
	for _, fe := range failed {
		out[fe.Field()] = message(fe)
	}
	return out
}

var fixedMessages = map[string]string{
	"required":              "This field is required",
	"email":                 "Must be a valid email address",
	"url":                   "Must be a valid URL",
	"uuid":                  "Must be a valid UUID",
	"is-user-role":          "Must be one of: " + joinValues(models.UserRoleTrainer, models.UserRoleCompany),
	"is-application-status": "Must be one of: " + joinValues(models.ApplicationStatuses...),
	"category-scores": fmt.Sprintf("Each category score must be between %d and %d",
		ratings.MinCategoryScore, ratings.MaxCategoryScore),
}

func message(fe validator.FieldError) string {
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "min":
		switch fe.Kind() {
		case reflect.String, reflect.Slice, reflect.Map:
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "len":
		return fmt.Sprintf("Must be exactly %s items/characters long", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
}

func joinValues[T ~string](values ...T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}
