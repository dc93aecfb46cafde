package api

import (
	"time"

	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// TaskStatus is a task's position in the TODO → IN_PROGRESS → REVIEW →
// DONE pipeline.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskReview     TaskStatus = "REVIEW"
	TaskDone       TaskStatus = "DONE"
)

// Next returns the following pipeline status, or the same status when the
// task is already done.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskTodo:
		return TaskInProgress
	case TaskInProgress:
		return TaskReview
	case TaskReview:
		return TaskDone
	}
	return s
}

// AssetType classifies a project asset link.
type AssetType string

const (
	AssetGithub AssetType = "GITHUB"
	AssetGdrive AssetType = "GDRIVE"
	AssetDoc    AssetType = "DOC"
)

// User is a dashboard account.
type User struct {
	ID       int         `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     policy.Role `json:"role"`
}

// Project as returned by the backend. Date-only fields stay strings
// (YYYY-MM-DD) to match the wire format.
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date,omitempty"`
	PM          *User     `json:"pm"`
	Tasks       []Task    `json:"tasks"`
	Assets      []Asset   `json:"assets"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task within a project.
type Task struct {
	ID          int        `json:"id"`
	Project     int        `json:"project"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *User      `json:"assigned_to"`
	Status      TaskStatus `json:"status"`
	Sprint      string     `json:"sprint"`
	DueDate     string     `json:"due_date,omitempty"`
	GithubPRURL string     `json:"github_pr_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Asset is a link or uploaded document attached to a project.
type Asset struct {
	ID           int       `json:"id"`
	Project      int       `json:"project"`
	AssetType    AssetType `json:"asset_type"`
	URL          string    `json:"url"`
	Description  string    `json:"description"`
	UploadedFile string    `json:"uploaded_file,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Notification addressed to the current user.
type Notification struct {
	ID        int       `json:"id"`
	User      int       `json:"user"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment on a task.
type Comment struct {
	ID        int       `json:"id"`
	Task      int       `json:"task"`
	Author    *User     `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
