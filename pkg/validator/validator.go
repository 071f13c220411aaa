package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError flattens validator errors into one message per field.
// The first message is meant to be shown to the submitter; the joined list is
// returned to API callers for debugging.
func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

// FirstValidationError returns only the first per-field message.
func FirstValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		return getFieldErrorMessage(validationErrors[0])
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":           "Name",
		"Email":          "Email",
		"Phone":          "Phone number",
		"Subject":        "Subject",
		"Message":        "Message",
		"InquiryType":    "Inquiry type",
		"CourseID":       "Course",
		"RoleLookingFor": "Role",
		"CoverLetter":    "Cover letter",
		"Title":          "Title",
		"Slug":           "Slug",
		"Description":    "Description",
		"SkillLevel":     "Skill level",
		"MaxStudents":    "Maximum students",
		"Price":          "Price",
		"Status":         "Status",
		"EmploymentType": "Employment type",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
