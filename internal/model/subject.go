package model

// GoalsMaxLength is the maximum number of characters allowed in Subject.Goals.
const GoalsMaxLength = 100

// Subject is an academic subject. Its Code is the only key; tasks and
// schedule entries reference a subject by code.
type Subject struct {
	Code       string `json:"code" validate:"notblank"`
	Name       string `json:"name" validate:"notblank"`
	Instructor string `json:"instructor"`
	Units      int    `json:"units" validate:"min=0"`
	Goals      string `json:"goals" validate:"max=100"`
}

// Validate checks the subject's fields and returns a *ValidationError
// describing every invalid field.
func (s Subject) Validate() error {
	return validateStruct(s)
}

// SubjectWithTasks pairs a subject with all of its tasks. Subjects without
// tasks carry an empty Tasks slice.
type SubjectWithTasks struct {
	Subject
	Tasks []Task `json:"tasks"`
}
