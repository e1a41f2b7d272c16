package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-maintenance-backend/internal/model"
)

func TestHasRank(t *testing.T) {
	testCases := []struct {
		name    string
		session Session
		min     Role
		want    bool
	}{
		{"anonymous never passes", Anonymous(), RoleViewer, false},
		{"public passes viewer", Public(), RoleViewer, true},
		{"public fails driver", Public(), RoleDriver, false},
		{"public fails mechanic", Public(), RoleMechanic, false},
		{"driver passes viewer", Authenticated("jo", RoleDriver), RoleViewer, true},
		{"driver fails mechanic", Authenticated("jo", RoleDriver), RoleMechanic, false},
		{"technician passes mechanic", Authenticated("al", RoleTechnician), RoleMechanic, true},
		{"admin passes admin", Authenticated("root", RoleAdmin), RoleAdmin, true},
		{"admin passes everything", Authenticated("root", RoleAdmin), RoleTechnician, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasRank(tc.session, tc.min))
		})
	}
}

func TestCapabilities(t *testing.T) {
	driver := Authenticated("jo", RoleDriver)
	mechanic := Authenticated("pat", RoleMechanic)
	public := Public()

	assert.False(t, CanAddServiceRecord(driver))
	assert.True(t, CanAddServiceRecord(mechanic))
	assert.False(t, CanAddServiceRecord(public))

	assert.True(t, CanMarkLubrication(driver))
	assert.False(t, CanMarkLubrication(public))

	assert.True(t, CanAddTask(driver))
	assert.False(t, CanManageUsers(mechanic))
	assert.True(t, CanManageUsers(Authenticated("root", RoleAdmin)))

	assert.True(t, CanViewMachine(public))
	assert.False(t, CanViewMachine(Anonymous()))
}

func TestCanEditMachine(t *testing.T) {
	plain := &model.Machine{ID: "m1"}
	restricted := &model.Machine{ID: "m2", EditPermissions: []string{"driver"}}

	assert.True(t, CanEditMachine(Authenticated("root", RoleAdmin), restricted))
	assert.True(t, CanEditMachine(Authenticated("jo", RoleDriver), restricted),
		"edit permissions widen access to the named role")
	assert.False(t, CanEditMachine(Authenticated("pat", RoleMechanic), restricted),
		"a declared permission set replaces the default rank check")

	assert.True(t, CanEditMachine(Authenticated("pat", RoleMechanic), plain))
	assert.False(t, CanEditMachine(Authenticated("jo", RoleDriver), plain))
	assert.False(t, CanEditMachine(Public(), plain))
	assert.False(t, CanEditMachine(Anonymous(), plain))
}

type resolverFunc func(id string) (model.Machine, error)

func (f resolverFunc) Machine(id string) (model.Machine, error) { return f(id) }

func knownMachines(ms ...model.Machine) MachineResolver {
	return resolverFunc(func(id string) (model.Machine, error) {
		for _, m := range ms {
			if m.ID == id {
				return m, nil
			}
		}
		return model.Machine{}, &model.NotFoundError{Entity: "machine", ID: id}
	})
}

func TestParseScanPayload(t *testing.T) {
	p, err := ParseScanPayload([]byte(`{"id":"m1","name":"Rig 4","model":"V80","serialNumber":"SN-1"}`))
	require.NoError(t, err)
	assert.Equal(t, "m1", p.ID)

	_, err = ParseScanPayload([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseScanPayload([]byte(`{"name":"no id"}`))
	assert.Error(t, err)
}

func TestGrantPublic(t *testing.T) {
	machines := knownMachines(model.Machine{ID: "m1", Name: "Rig 4"})

	s, err := GrantPublic(Anonymous(), ScanPayload{ID: "m1"}, machines)
	require.NoError(t, err)
	assert.Equal(t, KindPublicAccess, s.Kind)

	_, err = GrantPublic(Anonymous(), ScanPayload{ID: "nope"}, machines)
	assert.Error(t, err)

	auth := Authenticated("jo", RoleDriver)
	s, err = GrantPublic(auth, ScanPayload{ID: "m1"}, machines)
	require.NoError(t, err)
	assert.Equal(t, auth, s, "scanning must not replace a login")
}

func TestValidateScan(t *testing.T) {
	machines := knownMachines(model.Machine{ID: "m1", Name: "Rig 4", Model: "V80", SerialNumber: "SN-1"})

	m, err := ValidateScan(ScanPayload{ID: "m1", Name: "Rig 4", Model: "V80", SerialNumber: "SN-1"}, machines)
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)

	_, err = ValidateScan(ScanPayload{ID: "m1", Name: "Rig 4", Model: "V80", SerialNumber: "WRONG"}, machines)
	assert.Error(t, err, "every field must match exactly")
}
