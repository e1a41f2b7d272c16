package model

import "time"

// MachineStatus describes the operational state of a machine.
type MachineStatus string

const (
	StatusOperational  MachineStatus = "operational"
	StatusInService    MachineStatus = "in_service"
	StatusOutOfService MachineStatus = "out_of_service"
)

// Machine represents one tracked unit of industrial equipment together with
// its full maintenance history, open tasks and recurring schedules.
type Machine struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Model        string        `json:"model"`
	SerialNumber string        `json:"serialNumber"`
	Status       MachineStatus `json:"status"`
	Location     string        `json:"location"`

	Equipment          []Equipment           `json:"equipment"`
	ServiceRecords     []ServiceRecord       `json:"serviceRecords"`
	LubricationRecords []LubricationRecord   `json:"lubricationRecords"`
	Tasks              []Task                `json:"tasks"`
	Schedules          []MaintenanceSchedule `json:"schedules"`

	// EditPermissions lists role names allowed to edit this machine beyond
	// the default rank check. Empty means the default hierarchy applies.
	EditPermissions []string `json:"editPermissions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy. Mutating the copy never affects the original,
// which is what lets the store hand out snapshots without locking readers.
func (m Machine) Clone() Machine {
	c := m
	c.Equipment = make([]Equipment, len(m.Equipment))
	for i, e := range m.Equipment {
		c.Equipment[i] = e.Clone()
	}
	c.ServiceRecords = make([]ServiceRecord, len(m.ServiceRecords))
	for i, r := range m.ServiceRecords {
		c.ServiceRecords[i] = r.Clone()
	}
	c.LubricationRecords = append([]LubricationRecord(nil), m.LubricationRecords...)
	c.Tasks = append([]Task(nil), m.Tasks...)
	c.Schedules = append([]MaintenanceSchedule(nil), m.Schedules...)
	c.EditPermissions = append([]string(nil), m.EditPermissions...)
	return c
}

// Schedule returns the schedule for the given equipment type, or nil.
func (m *Machine) Schedule(et EquipmentType) *MaintenanceSchedule {
	for i := range m.Schedules {
		if m.Schedules[i].EquipmentType == et {
			return &m.Schedules[i]
		}
	}
	return nil
}

// Task returns the task with the given id, or nil.
func (m *Machine) Task(id string) *Task {
	for i := range m.Tasks {
		if m.Tasks[i].ID == id {
			return &m.Tasks[i]
		}
	}
	return nil
}

// HasEquipmentType reports whether the machine carries equipment of the
// given type.
func (m *Machine) HasEquipmentType(et EquipmentType) bool {
	for _, e := range m.Equipment {
		if e.Type == et {
			return true
		}
	}
	return false
}
