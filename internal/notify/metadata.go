package notify

import "github.com/google/uuid"

// Metadata carries optional context about the task or execution behind a
// notification. Every field is independently optional; a nil pointer means
// the field is absent. Values are accumulated fluently:
//
//	meta := notify.NewMetadata().
//		WithTask(taskID, "Deploy staging").
//		WithExitCode(1)
//
// Each With method returns an updated copy, so a Metadata value can be shared
// freely once built.
type Metadata struct {
	TaskID      *uuid.UUID `json:"task_id"`
	TaskTitle   *string    `json:"task_title"`
	ProjectID   *uuid.UUID `json:"project_id"`
	ProjectName *string    `json:"project_name"`
	WorkspaceID *uuid.UUID `json:"workspace_id"`
	ExecutionID *uuid.UUID `json:"execution_id"`
	ExitCode    *int64     `json:"exit_code"`
}

// NewMetadata returns an empty Metadata value.
func NewMetadata() Metadata {
	return Metadata{}
}

// WithTask records the task identifier and title.
func (m Metadata) WithTask(id uuid.UUID, title string) Metadata {
	m.TaskID = &id
	m.TaskTitle = &title
	return m
}

// WithProject records the project identifier and name.
func (m Metadata) WithProject(id uuid.UUID, name string) Metadata {
	m.ProjectID = &id
	m.ProjectName = &name
	return m
}

// WithWorkspace records the workspace identifier.
func (m Metadata) WithWorkspace(id uuid.UUID) Metadata {
	m.WorkspaceID = &id
	return m
}

// WithExecution records the execution identifier.
func (m Metadata) WithExecution(id uuid.UUID) Metadata {
	m.ExecutionID = &id
	return m
}

// WithExitCode records the process exit code.
func (m Metadata) WithExitCode(code int64) Metadata {
	m.ExitCode = &code
	return m
}
