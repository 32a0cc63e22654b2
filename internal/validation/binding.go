package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Tags usable in `binding:"..."` struct tags once RegisterGinValidators has run.
const (
	TagEmailFormat    = "email_format"
	TagStrongPassword = "strong_password"
	TagPasswordBytes  = "password_bytes"
)

// RegisterGinValidators installs the custom tags on Gin's default validator engine.
// Safe to call more than once.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}

// Register installs the custom tags on v and makes field errors report JSON field names.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation(TagEmailFormat, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register %s: %w", TagEmailFormat, err)
	}
	if err := v.RegisterValidation(TagStrongPassword, func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register %s: %w", TagStrongPassword, err)
	}
	if err := v.RegisterValidation(TagPasswordBytes, func(fl validator.FieldLevel) bool {
		return FitsPasswordHash(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register %s: %w", TagPasswordBytes, err)
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
