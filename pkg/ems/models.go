package ems

import "time"

// Exception statuses understood by the backend workflow.
const (
	StatusNew              = "NEW"
	StatusTriaged          = "TRIAGED"
	StatusInProgress       = "IN_PROGRESS"
	StatusAwaitingApproval = "AWAITING_APPROVAL"
	StatusApproved         = "APPROVED"
	StatusRejected         = "REJECTED"
	StatusResolved         = "RESOLVED"
	StatusClosed           = "CLOSED"
	StatusEscalated        = "ESCALATED"
)

var validStatuses = map[string]struct{}{
	StatusNew: {}, StatusTriaged: {}, StatusInProgress: {}, StatusAwaitingApproval: {},
	StatusApproved: {}, StatusRejected: {}, StatusResolved: {}, StatusClosed: {}, StatusEscalated: {},
}

// ValidStatus reports whether s is a known exception status.
func ValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}

// Health is the payload of GET /healthz.
type Health struct {
	Status string `json:"status" yaml:"status"`
	API    string `json:"api" yaml:"api"`
}

type UserCreate struct {
	Username string  `json:"username" yaml:"username"`
	Email    string  `json:"email" yaml:"email"`
	FullName *string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	IsActive bool    `json:"is_active" yaml:"is_active"`
}

type User struct {
	ID       int     `json:"id" yaml:"id"`
	Username string  `json:"username" yaml:"username"`
	Email    string  `json:"email" yaml:"email"`
	FullName *string `json:"full_name" yaml:"full_name"`
	IsActive bool    `json:"is_active" yaml:"is_active"`
}

// ExceptionTypeCreate carries a new exception type. Use NewExceptionTypeCreate
// to get the backend defaults for SLA, approval levels and active flag.
type ExceptionTypeCreate struct {
	Code            string  `json:"code" yaml:"code"`
	Name            string  `json:"name" yaml:"name"`
	Description     *string `json:"description,omitempty" yaml:"description,omitempty"`
	DefaultSLAHours int     `json:"default_sla_hours" yaml:"default_sla_hours"`
	ApprovalLevels  int     `json:"approval_levels" yaml:"approval_levels"`
	Active          bool    `json:"active" yaml:"active"`
}

// NewExceptionTypeCreate returns a create payload with a 72h SLA, one approval level, active.
func NewExceptionTypeCreate(code, name string) ExceptionTypeCreate {
	return ExceptionTypeCreate{
		Code:            code,
		Name:            name,
		DefaultSLAHours: 72,
		ApprovalLevels:  1,
		Active:          true,
	}
}

type ExceptionType struct {
	ID              int     `json:"id" yaml:"id"`
	Code            string  `json:"code" yaml:"code"`
	Name            string  `json:"name" yaml:"name"`
	Description     *string `json:"description" yaml:"description"`
	DefaultSLAHours int     `json:"default_sla_hours" yaml:"default_sla_hours"`
	ApprovalLevels  int     `json:"approval_levels" yaml:"approval_levels"`
	Active          bool    `json:"active" yaml:"active"`
}

type ExceptionCreate struct {
	TypeID      int        `json:"type_id" yaml:"type_id"`
	Title       string     `json:"title" yaml:"title"`
	Description *string    `json:"description,omitempty" yaml:"description,omitempty"`
	Severity    *string    `json:"severity,omitempty" yaml:"severity,omitempty"`
	BUID        *string    `json:"bu_id,omitempty" yaml:"bu_id,omitempty"`
	CreatedBy   *int       `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	AssignedTo  *int       `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty" yaml:"due_at,omitempty"`
	Priority    *int       `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Exception is a tracked exception record.
type Exception struct {
	ID          int        `json:"id" yaml:"id"`
	TypeID      int        `json:"type_id" yaml:"type_id"`
	Title       string     `json:"title" yaml:"title"`
	Description *string    `json:"description" yaml:"description"`
	Severity    *string    `json:"severity" yaml:"severity"`
	BUID        *string    `json:"bu_id" yaml:"bu_id"`
	CreatedBy   *int       `json:"created_by" yaml:"created_by"`
	AssignedTo  *int       `json:"assigned_to" yaml:"assigned_to"`
	Status      string     `json:"status" yaml:"status"`
	Priority    *int       `json:"priority" yaml:"priority"`
	DueAt       *time.Time `json:"due_at" yaml:"due_at"`
	EscalatedAt *time.Time `json:"escalated_at" yaml:"escalated_at"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"updated_at"`
}

// ExceptionFilter narrows ListExceptions. Zero fields are not sent.
type ExceptionFilter struct {
	Status string
	TypeID int
}

type PresignUploadRequest struct {
	ExceptionID int     `json:"exception_id" yaml:"exception_id"`
	Filename    string  `json:"filename" yaml:"filename"`
	Mime        *string `json:"mime,omitempty" yaml:"mime,omitempty"`
	UploadedBy  *int    `json:"uploaded_by,omitempty" yaml:"uploaded_by,omitempty"`
}

type PresignUpload struct {
	AttachmentID int    `json:"attachment_id" yaml:"attachment_id"`
	UploadURL    string `json:"upload_url" yaml:"upload_url"`
	Key          string `json:"key" yaml:"key"`
}

type presignDownloadRequest struct {
	AttachmentID int `json:"attachment_id"`
}

type PresignDownload struct {
	DownloadURL string `json:"download_url" yaml:"download_url"`
}

// Attachment is a row of GET /attachments/by-exception/{id}.
type Attachment struct {
	ID         int     `json:"id" yaml:"id"`
	Filename   string  `json:"filename" yaml:"filename"`
	Mime       *string `json:"mime" yaml:"mime"`
	UploadedBy *int    `json:"uploaded_by" yaml:"uploaded_by"`
	UploadedAt *string `json:"uploaded_at" yaml:"uploaded_at"`
}
