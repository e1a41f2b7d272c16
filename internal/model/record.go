package model

import "time"

// ServiceRecord is one completed service event. Records are immutable once
// created and stored in insertion order; newest-first is a view concern.
type ServiceRecord struct {
	ID            string        `json:"id"`
	EquipmentType EquipmentType `json:"equipmentType"`
	Description   string        `json:"description"`
	PerformedBy   string        `json:"performedBy"`
	Issues        []string      `json:"issues,omitempty"`
	PerformedAt   time.Time     `json:"performedAt"`
}

// Clone returns a copy with its own issues slice.
func (r ServiceRecord) Clone() ServiceRecord {
	c := r
	c.Issues = append([]string(nil), r.Issues...)
	return c
}

// LubricationRecord is one completed lubrication event, immutable once
// created.
type LubricationRecord struct {
	ID            string        `json:"id"`
	EquipmentType EquipmentType `json:"equipmentType"`
	Notes         string        `json:"notes"`
	PerformedBy   string        `json:"performedBy"`
	PerformedAt   time.Time     `json:"performedAt"`
}
