package model

// ScheduleEntry is one weekly class meeting of a subject.
type ScheduleEntry struct {
	ID          int64   `json:"id"`
	SubjectCode string  `json:"subject_code" validate:"notblank"`
	Day         Weekday `json:"day" validate:"weekday"`
	StartTime   string  `json:"start_time" validate:"clock"`
	EndTime     string  `json:"end_time" validate:"clock"`
	Room        string  `json:"room"`

	// SubjectName is populated by queries that join with subjects.
	SubjectName string `json:"subject_name,omitempty"`
}

// Validate checks the entry's fields, including that EndTime is after
// StartTime on the same day.
func (e ScheduleEntry) Validate() error {
	return validateStruct(e)
}

// TimeRange formats the entry as "HH:MM - HH:MM".
func (e ScheduleEntry) TimeRange() string {
	return e.StartTime + " - " + e.EndTime
}

// Normalized returns a copy of e with its clock times zero-padded when they
// parse, so "7:00" is stored as "07:00". Unparseable times are left as is
// for Validate to report.
func (e ScheduleEntry) Normalized() ScheduleEntry {
	if t, err := ParseClock(e.StartTime); err == nil {
		e.StartTime = t
	}
	if t, err := ParseClock(e.EndTime); err == nil {
		e.EndTime = t
	}
	return e
}
