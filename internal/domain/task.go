package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterCompleted StatusFilter = "completed"
	StatusFilterPending   StatusFilter = "pending"
)

// Task is a single to-do item tracked by the system. CreatedAt is assigned
// once at creation and never changes; the JSON tags match the persisted
// record layout.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskInput carries the caller-provided fields for creating a task.
type TaskInput struct {
	Title       string
	Description string
	Priority    Priority
}

// TaskUpdate carries the mutable fields replaced by an edit. ID and
// CreatedAt are never part of an update.
type TaskUpdate struct {
	Title       string
	Description string
	Priority    Priority
	Completed   bool
}

// TaskFilter narrows a listing. Zero values ("" / StatusFilterAll absent)
// pass everything; the three predicates combine with AND.
type TaskFilter struct {
	Text     string
	Priority Priority
	Status   StatusFilter
}

// TaskStats aggregates counts over the whole collection.
type TaskStats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"highPriority"`
}
