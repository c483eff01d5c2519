package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/VibeFlow-2025/eduvibe-service/internal/models"
)

// BusinessValidator applies the struct rules plus checks that need more than
// one field or the current time.
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator builds a standalone business validator.
func NewBusinessValidator() *BusinessValidator {
	return New().GetBusinessValidator()
}

func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (bv *BusinessValidator) ValidateStudentRegistration(req *StudentRegistrationRequest) ValidationErrors {
	return bv.Validate(req)
}

func (bv *BusinessValidator) ValidateMentorRegistration(req *MentorRegistrationRequest) ValidationErrors {
	errs := bv.Validate(req)

	for i, s := range req.Subjects {
		for j, level := range s.PreferredLevels {
			if strings.TrimSpace(level) == "" {
				errs = append(errs, ValidationError{
					Field:   "subjects." + strconv.Itoa(i) + ".preferredLevels." + strconv.Itoa(j),
					Message: "Preferred level must not be empty",
					Code:    CodeTooSmall,
				})
			}
		}
	}

	return errs
}

// ValidateBooking checks a booking request against now, interpreting the
// date and time in loc. On success it returns the scheduled instant.
func (bv *BusinessValidator) ValidateBooking(req *BookSessionRequest, now time.Time, loc *time.Location) (time.Time, ValidationErrors) {
	if errs := bv.Validate(req); len(errs) > 0 {
		return time.Time{}, errs
	}
	if loc == nil {
		loc = time.UTC
	}

	scheduled, err := time.ParseInLocation(models.SessionDateLayout+" "+models.SessionTimeLayout, req.Date+" "+req.Time, loc)
	if err != nil {
		return time.Time{}, ValidationErrors{{Field: "date", Message: "Date must be in YYYY-MM-DD format", Code: CodeInvalidStr}}
	}

	localNow := now.In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	day := time.Date(scheduled.Year(), scheduled.Month(), scheduled.Day(), 0, 0, 0, 0, loc)

	if day.Before(today) {
		return time.Time{}, ValidationErrors{{Field: "date", Message: "Date cannot be in the past", Code: CodeCustom}}
	}
	if scheduled.Before(now) {
		return time.Time{}, ValidationErrors{{Field: "time", Message: "Time cannot be in the past", Code: CodeCustom}}
	}

	return scheduled, nil
}

// ValidateStatusTransition reports a single error when next is not reachable
// from current.
func (bv *BusinessValidator) ValidateStatusTransition(current, next models.SessionStatus) ValidationErrors {
	if current.CanTransitionTo(next) {
		return nil
	}
	return ValidationErrors{{
		Field:   "status",
		Message: "cannot change session from " + string(current) + " to " + string(next),
		Code:    CodeCustom,
	}}
}

var (
	clockTimeRe    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	calendarDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func registerRules(v *validator.Validate) {
	v.RegisterValidation("education_level", func(fl validator.FieldLevel) bool {
		return models.EducationLevel(fl.Field().String()).IsValid()
	})

	v.RegisterValidation("learning_style", func(fl validator.FieldLevel) bool {
		return models.LearningStyle(fl.Field().String()).IsValid()
	})

	v.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
		return models.SkillLevel(fl.Field().String()).IsValid()
	})

	v.RegisterValidation("preferred_language", func(fl validator.FieldLevel) bool {
		return models.PreferredLanguage(fl.Field().String()).IsValid()
	})

	v.RegisterValidation("teaching_experience", func(fl validator.FieldLevel) bool {
		return models.TeachingExperience(fl.Field().String()).IsValid()
	})

	v.RegisterValidation("session_status", func(fl validator.FieldLevel) bool {
		return models.SessionStatus(fl.Field().String()).IsValid()
	})

	v.RegisterValidation("session_duration", func(fl validator.FieldLevel) bool {
		d := int(fl.Field().Int())
		for _, allowed := range models.SessionDurations {
			if d == allowed {
				return true
			}
		}
		return false
	})

	v.RegisterValidation("clock_time", func(fl validator.FieldLevel) bool {
		return clockTimeRe.MatchString(fl.Field().String())
	})

	// Shape and calendar validity, so 2026-02-30 is rejected.
	v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !calendarDateRe.MatchString(s) {
			return false
		}
		_, err := time.Parse(models.SessionDateLayout, s)
		return err == nil
	})

	v.RegisterValidation("not_blank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
