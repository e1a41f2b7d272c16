package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// Task is a unit of planned or completed work on a machine. Tasks are
// append-only: they are never deleted, only marked complete.
type Task struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	EquipmentType EquipmentType `json:"equipmentType"`
	Status        TaskStatus    `json:"status"`
	DueDate       time.Time     `json:"dueDate"`
	// AssignedTo records who completed the task once Status is completed.
	AssignedTo string    `json:"assignedTo,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
