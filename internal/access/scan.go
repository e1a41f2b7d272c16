package access

import (
	"encoding/json"

	"equipment-maintenance-backend/internal/model"
)

// ScanPayload is the structured record carried by a machine code. The
// encoding of the code itself (QR or otherwise) is not this package's
// concern; only the payload contract is.
type ScanPayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
}

// ParseScanPayload decodes a raw scanned code into a payload.
func ParseScanPayload(raw []byte) (ScanPayload, error) {
	var p ScanPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return ScanPayload{}, &model.ValidationError{Field: "scan", Reason: "malformed payload"}
	}
	if p.ID == "" {
		return ScanPayload{}, &model.ValidationError{Field: "scan.id", Reason: "required"}
	}
	return p, nil
}

// MachineResolver resolves a machine id to the machine it identifies.
type MachineResolver interface {
	Machine(id string) (model.Machine, error)
}

// GrantPublic upgrades an anonymous session to public access when the
// scanned payload's id resolves to a known machine. An authenticated session
// is returned unchanged; scanning never downgrades a login.
func GrantPublic(s Session, p ScanPayload, machines MachineResolver) (Session, error) {
	if s.Kind == KindAuthenticated {
		return s, nil
	}
	if _, err := machines.Machine(p.ID); err != nil {
		return s, err
	}
	return Public(), nil
}

// ValidateScan checks a payload against the machine it claims to identify.
// Used when the code is presented as proof, not just for navigation: all
// four fields must match exactly.
func ValidateScan(p ScanPayload, machines MachineResolver) (model.Machine, error) {
	m, err := machines.Machine(p.ID)
	if err != nil {
		return model.Machine{}, err
	}
	if m.Name != p.Name || m.Model != p.Model || m.SerialNumber != p.SerialNumber {
		return model.Machine{}, &model.ValidationError{Field: "scan", Reason: "code does not match machine"}
	}
	return m, nil
}
