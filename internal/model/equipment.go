package model

// EquipmentType enumerates the kinds of equipment mounted on a machine.
type EquipmentType string

const (
	EquipmentTruck    EquipmentType = "truck"
	EquipmentCrane    EquipmentType = "crane"
	EquipmentWinch    EquipmentType = "winch"
	EquipmentHooklift EquipmentType = "hooklift"
)

// Equipment is one piece of equipment belonging to a machine. It never
// exists on its own; it is embedded in the owning Machine.
type Equipment struct {
	Type EquipmentType `json:"type"`
	// Specs holds free-form specification key/value pairs (capacity,
	// manufacturer, year, ...).
	Specs map[string]string `json:"specs,omitempty"`
}

// Clone returns a deep copy of the equipment.
func (e Equipment) Clone() Equipment {
	c := e
	if e.Specs != nil {
		c.Specs = make(map[string]string, len(e.Specs))
		for k, v := range e.Specs {
			c.Specs[k] = v
		}
	}
	return c
}
