package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// custom validation tags
const (
	notBlankTag = "notblank"
	priorityTag = "priority"
	statusTag   = "status"
	weekdayTag  = "weekday"
	clockTag    = "clock"
	requiredTag = "required"
	afterTag    = "after_start"
)

func init() {
	validate = validator.New()

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation(priorityTag, func(fl validator.FieldLevel) bool {
		return Priority(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation(statusTag, func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation(weekdayTag, func(fl validator.FieldLevel) bool {
		return Weekday(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation(clockTag, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		norm, err := ParseClock(s)
		return err == nil && norm == s
	})

	validate.RegisterStructValidation(taskStructValidation, Task{})
	validate.RegisterStructValidation(scheduleStructValidation, ScheduleEntry{})
}

func taskStructValidation(sl validator.StructLevel) {
	t := sl.Current().Interface().(Task)
	if t.Deadline.IsZero() {
		sl.ReportError(t.Deadline, "deadline", "Deadline", requiredTag, "")
	}
}

func scheduleStructValidation(sl validator.StructLevel) {
	e := sl.Current().Interface().(ScheduleEntry)
	// Only compare once both times are well formed; clock errors are
	// reported by the field tags.
	start, errStart := ParseClock(e.StartTime)
	end, errEnd := ParseClock(e.EndTime)
	if errStart == nil && errEnd == nil && end <= start {
		sl.ReportError(e.EndTime, "end_time", "EndTime", afterTag, "")
	}
}

// validateStruct runs the struct tags and converts failures into a
// *ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating %T: %w", v, err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag, requiredTag:
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case priorityTag:
		return "must be one of High, Medium, Low"
	case statusTag:
		return "must be one of Not Started, In Progress, Completed"
	case weekdayTag:
		return "must be one of Mon, Tue, Wed, Thu, Fri, Sat, Sun"
	case clockTag:
		return "must be in HH:MM format"
	case afterTag:
		return "must be after start time"
	default:
		return "is invalid"
	}
}
