package domain

// Status represents the progress state of a task.
type Status string

// Possible task status values. The string values are part of the wire format.
const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus converts raw into a Status, failing with a ValidationError
// when the value is not recognised. Matching is exact.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", NewValidationError(
			"status",
			"must be one of 'Pending', 'In Progress', 'Completed'",
			ErrInvalidStatus,
		)
	}
	return s, nil
}

// Task is a to-do item. ID is assigned by the store on creation and is
// opaque to the rest of the application.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      Status  `json:"status"`
}

// NewTask builds a validated task that has not been persisted yet.
// A nil status defaults to StatusPending; the description is kept as given.
func NewTask(title string, description *string, status *Status) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		Status:      StatusPending,
	}
	if status != nil {
		task.Status = *status
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the invariants every stored task must satisfy.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	return nil
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
}

// Validate applies field validation to the fields present in the patch only.
func (p TaskPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if p.Status != nil {
		if _, err := ParseStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// Apply overwrites the fields of t that are present in the patch.
// The caller is expected to have validated the patch.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		desc := *p.Description
		t.Description = &desc
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
