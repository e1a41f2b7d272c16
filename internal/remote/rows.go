package remote

import (
	"time"

	"equipment-maintenance-backend/internal/model"
)

// MachineRow is the row-per-machine shape of the remote machines table.
// Nested collections that the remote contract does not break out into their
// own tables travel as JSON columns.
type MachineRow struct {
	ID              string                      `gorm:"primaryKey;size:36"`
	Name            string                      `gorm:"size:256;not null"`
	Model           string                      `gorm:"size:128"`
	SerialNumber    string                      `gorm:"size:128"`
	Status          string                      `gorm:"size:32"`
	Equipment       []model.Equipment           `gorm:"serializer:json"`
	Location        string                      `gorm:"size:256"`
	Schedules       []model.MaintenanceSchedule `gorm:"serializer:json"`
	EditPermissions []string                    `gorm:"serializer:json"`
	CreatedAt       time.Time                   `gorm:"not null"`
	UpdatedAt       time.Time                   `gorm:"not null"`
}

// TableName returns the remote table name for machines.
func (MachineRow) TableName() string { return "machines" }

// Record kinds stored in the maintenance_records table.
const (
	RecordKindService     = "service"
	RecordKindLubrication = "lubrication"
)

// MaintenanceRecordRow is one row of the append-only maintenance history
// table, covering both service and lubrication events.
type MaintenanceRecordRow struct {
	ID            string    `gorm:"primaryKey;size:36"`
	MachineID     string    `gorm:"size:36;index;not null"`
	Kind          string    `gorm:"size:16;not null"`
	EquipmentType string    `gorm:"size:32;not null"`
	Description   string    `gorm:"size:1024"`
	Notes         string    `gorm:"size:1024"`
	PerformedBy   string    `gorm:"size:128"`
	Issues        []string  `gorm:"serializer:json"`
	PerformedAt   time.Time `gorm:"index;not null"`
}

// TableName returns the remote table name for maintenance records.
func (MaintenanceRecordRow) TableName() string { return "maintenance_records" }

// TaskRow is one row of the tasks table. Rows are appended and may later be
// updated in place when a task is completed; they are never deleted except
// together with their machine.
type TaskRow struct {
	ID            string    `gorm:"primaryKey;size:36"`
	MachineID     string    `gorm:"size:36;index;not null"`
	Title         string    `gorm:"size:256"`
	EquipmentType string    `gorm:"size:32"`
	Status        string    `gorm:"size:16;not null"`
	DueDate       time.Time `gorm:"index"`
	AssignedTo    string    `gorm:"size:128"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the remote table name for tasks.
func (TaskRow) TableName() string { return "tasks" }
