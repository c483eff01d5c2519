package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error codes carried in ValidationError.Code.
const (
	CodeRequired    = "required"
	CodeInvalidType = "invalid_type"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeInvalidEnum = "invalid_enum_value"
	CodeInvalidStr  = "invalid_string"
	CodeCustom      = "custom"
)

// ValidationError describes one invalid field. Field is the dotted JSON path
// of the value, e.g. "subjects.0.skillLevel".
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// HasField reports whether any error points at field.
func (ve ValidationErrors) HasField(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Validator wraps a go-playground validator configured with the
// marketplace rules.
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)
	registerRules(validate)

	return &Validator{
		validate: validate,
		business: &BusinessValidator{validate: validate},
	}
}

// Validate runs struct validation and returns nil when s is valid.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// ToValidationErrors converts validator (or JSON decoding) errors into
// ValidationErrors. Unknown errors become a single generic entry.
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make(ValidationErrors, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Message: messageFor(fe),
				Code:    codeFor(fe),
			})
		}
		return out
	}

	if decoded, ok := FromDecodeError(err, nil); ok {
		return decoded
	}

	return ValidationErrors{{Field: "", Message: err.Error(), Code: CodeCustom}}
}

// FromDecodeError reports JSON type mismatches as validation errors. Any
// other decoding failure (syntax, EOF) returns ok=false. When body is the
// decoded document, array indices are restored in the field path.
func FromDecodeError(err error, body []byte) (ValidationErrors, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ValidationErrors{{
			Field:   indexedPath(body, typeErr.Field, typeErr.Type),
			Message: fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value),
			Code:    CodeInvalidType,
		}}, true
	}
	return nil, false
}

// indexedPath turns the decoder's "subjects.currentYear" into
// "subjects.0.currentYear" by finding the first element whose value has the
// wrong JSON kind. The decoder reports the first mismatch in document order.
func indexedPath(body []byte, field string, expected reflect.Type) string {
	if field == "" || len(body) == 0 {
		return field
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return field
	}

	path, ok := locateMismatch(doc, strings.Split(field, "."), expected)
	if !ok {
		return field
	}
	return strings.Join(path, ".")
}

func locateMismatch(node interface{}, segments []string, expected reflect.Type) ([]string, bool) {
	if items, ok := node.([]interface{}); ok && (len(segments) > 0 || !isListType(expected)) {
		for i, item := range items {
			if rest, ok := locateMismatch(item, segments, expected); ok {
				return append([]string{strconv.Itoa(i)}, rest...), true
			}
		}
		return nil, false
	}

	if len(segments) == 0 {
		return nil, !matchesKind(node, expected)
	}

	obj, ok := node.(map[string]interface{})
	if !ok {
		return nil, false
	}
	child, ok := obj[segments[0]]
	if !ok {
		return nil, false
	}
	rest, ok := locateMismatch(child, segments[1:], expected)
	if !ok {
		return nil, false
	}
	return append([]string{segments[0]}, rest...), true
}

func isListType(t reflect.Type) bool {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t != nil && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array)
}

// matchesKind reports whether a generically decoded JSON value can be
// decoded into t.
func matchesKind(v interface{}, t reflect.Type) bool {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if v == nil || t == nil {
		return true
	}

	switch t.Kind() {
	case reflect.String:
		_, ok := v.(string)
		return ok
	case reflect.Bool:
		_, ok := v.(bool)
		return ok
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := v.(float64)
		return ok && f == math.Trunc(f)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := v.(float64)
		return ok && f >= 0 && f == math.Trunc(f)
	case reflect.Float32, reflect.Float64:
		_, ok := v.(float64)
		return ok
	case reflect.Slice, reflect.Array:
		_, ok := v.([]interface{})
		return ok
	case reflect.Struct, reflect.Map:
		_, ok := v.(map[string]interface{})
		return ok
	}
	return true
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// fieldPath turns "Request.subjects[0].skillLevel" into "subjects.0.skillLevel".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Ptr:
		return jsonKind(t.Elem())
	}
	return t.String()
}

func codeFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return CodeRequired
	case "min", "gte", "gt":
		return CodeTooSmall
	case "max", "lte", "lt":
		return CodeTooBig
	case "email", "url", "numeric", "clock_time", "calendar_date":
		return CodeInvalidStr
	case "education_level", "learning_style", "skill_level", "preferred_language",
		"teaching_experience", "session_duration", "session_status":
		return CodeInvalidEnum
	}
	return CodeCustom
}

// fieldMessages holds the user-facing wording for specific field/rule pairs.
// Keys are "<leaf json name>.<tag>", optionally suffixed with "=<param>".
var fieldMessages = map[string]string{
	"firebaseUid.required":                  "Firebase UID is required",
	"email.required":                        "Email is required",
	"email.email":                           "Invalid email address",
	"fullName.required":                     "Full name is required",
	"age.min=21":                            "Mentors must be at least 21 years old",
	"age.min=5":                             "Age must be between 5 and 100",
	"age.max=100":                           "Age must be between 5 and 100",
	"fullName.max":                          "Full name is too long",
	"contactNumber.min":                     "Contact number must be at least 10 digits",
	"contactNumber.max":                     "Contact number is too long",
	"educationLevel.education_level":        "Education level must be Grade 9, O/L, or A/L",
	"school.required":                       "School name is required",
	"school.max":                            "School name is too long",
	"preferredLearningStyle.learning_style": "Learning style must be Visual, Hands-On, Theoretical, or Mixed",
	"disabilityDetails.max":                 "Disability details are too long",
	"subjectName.required":                  "Subject name is required",
	"subjectName.max":                       "Subject name is too long",
	"currentYear.min":                       "Current year must be between 1 and 13",
	"currentYear.max":                       "Current year must be between 1 and 13",
	"skillLevel.skill_level":                "Skill level must be Beginner, Intermediate, or Advanced",
	"currentLocation.required":              "Location is required",
	"bio.required":                          "Bio is required",
	"bio.max":                               "Bio must not exceed 500 characters",
	"professionalRole.required":             "Professional role is required",
	"preferredLevels.min":                   "Select at least one preferred level",
	"preferredLevels.required":              "Select at least one preferred level",
	"linkedinUrl.required":                  "LinkedIn URL is required",
	"linkedinUrl.url":                       "Invalid LinkedIn URL",
	"githubOrPortfolioUrl.url":              "Invalid URL",
	"profilePictureUrl.url":                 "Invalid profile picture URL",
	"subjects.required":                     "At least one subject is required",
	"subjects.min":                          "At least one subject is required",
	"subjects.max":                          "You can select at most 10 subjects",
	"mentorId.required":                     "Mentor is required",
	"subject.required":                      "Subject is required",
	"subject.not_blank":                     "Subject is required",
	"description.required":                  "Description is required",
	"description.not_blank":                 "Description is required",
	"date.required":                         "Date is required",
	"time.required":                         "Time is required",
	"duration.required":                     "Duration is required",
}

func messageFor(fe validator.FieldError) string {
	key := fe.Field() + "." + fe.Tag()
	if msg, ok := fieldMessages[key+"="+fe.Param()]; ok {
		return msg
	}
	if msg, ok := fieldMessages[key]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		if isStringLike(fe.Kind()) {
			return fmt.Sprintf("Must contain at least %s character(s)", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "max":
		if isStringLike(fe.Kind()) {
			return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid URL"
	case "numeric":
		return "Must be a numeric id"
	case "preferred_language":
		return "Preferred language must be English, Sinhala, Tamil, or Other"
	case "teaching_experience":
		return "Teaching experience must be None, One_to_Three_Years, Three_to_Five_Years, or Five_Plus_Years"
	case "session_duration":
		return "Duration must be 30, 60, 90, or 120 minutes"
	case "session_status":
		return "Status must be pending, approved, rejected, cancelled, or completed"
	case "clock_time":
		return "Time must be in HH:MM format"
	case "calendar_date":
		return "Date must be in YYYY-MM-DD format"
	case "not_blank":
		return "Must not be blank"
	}
	return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
}

func isStringLike(k reflect.Kind) bool {
	return k == reflect.String
}
