package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"legalconsult-backend/models"

	"github.com/go-playground/validator/v10"
)

var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()

	// Report json field names rather than Go field names
	requestValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateConsultationRequest trims and defaults req, then checks it against
// its struct constraints. Lengths are counted in characters, not bytes.
// The returned error is a *ValidationError.
func ValidateConsultationRequest(req models.ConsultationRequest) (models.ConsultationRequest, error) {
	req.QueryText = strings.TrimSpace(req.QueryText)
	req.FreeformContext = strings.TrimSpace(req.FreeformContext)
	req.CaseType = models.CaseType(strings.TrimSpace(string(req.CaseType)))
	if req.Language == "" {
		req.Language = models.DefaultLanguage
	}
	if req.IncludeReferences == nil {
		include := true
		req.IncludeReferences = &include
	}

	if err := requestValidate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return req, toValidationError(verrs[0])
		}
		return req, &ValidationError{Field: "request", Constraint: "valid", Message: err.Error()}
	}

	return req, nil
}

func toValidationError(fe validator.FieldError) *ValidationError {
	ve := &ValidationError{Field: fe.Field(), Constraint: fe.Tag()}

	switch fe.Tag() {
	case "required":
		ve.Message = "is required"
	case "min":
		ve.Message = fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		ve.Message = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		ve.Message = fmt.Sprintf("must be one of [%s]", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		ve.Message = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return ve
}
