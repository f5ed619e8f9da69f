// Package validation checks task form input before anything is sent to the
// task API. Create and update share one rule table; they differ only in which
// fields are required and in the due-date floor, which applies to create only.
package validation

import (
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/task-web/internal/models"
)

// Form field names, as used in templates and error maps.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldDueDate     = "dueDate"
)

const (
	tagRequired     = "required"
	tagTaskDate     = "task_date"
	tagTodayOrLater = "today_or_later"
)

// TaskInput is raw form input. A nil field was not supplied.
type TaskInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

type fieldRule struct {
	field    string
	tag      string
	messages map[string]string
}

// fieldRules is shared by both variants.
var fieldRules = map[string]fieldRule{
	FieldTitle: {
		field: FieldTitle,
		tag:   "min=3,max=100",
		messages: map[string]string{
			tagRequired: "Title is required",
			"min":       "Title must be at least 3 characters",
			"max":       "Title must be less than 100 characters",
		},
	},
	FieldDescription: {
		field: FieldDescription,
		tag:   "max=500",
		messages: map[string]string{
			"max": "Description must be less than 500 characters",
		},
	},
	FieldStatus: {
		field: FieldStatus,
		tag:   "oneof=" + statusList(),
		messages: map[string]string{
			tagRequired: "Please select a valid status",
			"oneof":     "Please select a valid status",
		},
	},
	FieldDueDate: {
		field: FieldDueDate,
		tag:   tagTaskDate,
		messages: map[string]string{
			tagRequired:     "Due date is required",
			tagTaskDate:     "Please enter a valid date",
			tagTodayOrLater: "Due date must be in the future",
		},
	},
}

func statusList() string {
	names := make([]string, 0, len(models.AllStatuses()))
	for _, s := range models.AllStatuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, " ")
}

// Errors maps a form field to its first failing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator validates task input against the current date.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New creates a Validator. now defaults to time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}
	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation(tagTaskDate, isTaskDate)
	_ = v.validate.RegisterValidation(tagTodayOrLater, v.isTodayOrLater)
	return v
}

func isTaskDate(fl validator.FieldLevel) bool {
	_, err := models.ParseTimestamp(fl.Field().String())
	return err == nil
}

func (v *Validator) isTodayOrLater(fl validator.FieldLevel) bool {
	due, err := models.ParseTimestamp(fl.Field().String())
	if err != nil {
		return false
	}
	return !due.Before(StartOfDay(v.now()))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidateCreate checks input for a new task. Title, status and due date are
// required and the due date may not be before today.
func (v *Validator) ValidateCreate(input TaskInput) (models.TaskCreate, error) {
	errs := Errors{}
	v.check(errs, FieldTitle, input.Title, true, "")
	v.check(errs, FieldDescription, input.Description, false, "")
	v.check(errs, FieldStatus, input.Status, true, "")
	v.check(errs, FieldDueDate, input.DueDate, true, tagTodayOrLater)

	if len(errs) > 0 {
		return models.TaskCreate{}, errs
	}

	out := models.TaskCreate{
		Title:  *input.Title,
		Status: models.TaskStatus(strings.TrimSpace(*input.Status)),
	}
	if input.Description != nil && *input.Description != "" {
		desc := *input.Description
		out.Description = &desc
	}
	// Already checked by task_date.
	out.DueDate, _ = models.ParseTimestamp(*input.DueDate)
	return out, nil
}

// ValidateUpdate checks a partial update. Only supplied fields are checked and
// past due dates are accepted.
func (v *Validator) ValidateUpdate(input TaskInput) (models.TaskUpdate, error) {
	errs := Errors{}
	dueDate := input.DueDate
	if dueDate != nil && strings.TrimSpace(*dueDate) == "" {
		dueDate = nil
	}

	v.check(errs, FieldTitle, input.Title, false, "")
	v.check(errs, FieldDescription, input.Description, false, "")
	v.check(errs, FieldStatus, input.Status, false, "")
	v.check(errs, FieldDueDate, dueDate, false, "")

	if len(errs) > 0 {
		return models.TaskUpdate{}, errs
	}

	var out models.TaskUpdate
	if input.Title != nil {
		title := *input.Title
		out.Title = &title
	}
	if input.Description != nil {
		desc := *input.Description
		out.Description = &desc
	}
	if input.Status != nil {
		status := models.TaskStatus(strings.TrimSpace(*input.Status))
		out.Status = &status
	}
	if dueDate != nil {
		ts, _ := models.ParseTimestamp(*dueDate)
		out.DueDate = &ts
	}
	return out, nil
}

func (v *Validator) check(errs Errors, field string, value *string, required bool, extraTag string) {
	rule := fieldRules[field]
	if value == nil {
		if required {
			errs[field] = rule.messages[tagRequired]
		}
		return
	}

	tag := rule.tag
	if extraTag != "" {
		tag += "," + extraTag
	}
	raw := *value
	if field == FieldStatus || field == FieldDueDate {
		raw = strings.TrimSpace(raw)
	}

	err := v.validate.Var(raw, tag)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		errs[field] = rule.messages[rule.firstTag()]
		return
	}
	msg, ok := rule.messages[verrs[0].Tag()]
	if !ok {
		msg = rule.messages[rule.firstTag()]
	}
	errs[field] = msg
}

func (r fieldRule) firstTag() string {
	tag, _, _ := strings.Cut(r.tag, ",")
	name, _, _ := strings.Cut(tag, "=")
	return name
}
