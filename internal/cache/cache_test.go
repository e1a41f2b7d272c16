package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-maintenance-backend/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)
	c, err := NewWithDB(db)
	require.NoError(t, err)
	return c
}

func TestLoadEmptyCache(t *testing.T) {
	c := newTestCache(t)
	machines, err := c.LoadMachines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, machines)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := newTestCache(t)
	performed := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	machines := []model.Machine{
		{
			ID:           "m1",
			Name:         "Rig 4",
			Model:        "V80",
			SerialNumber: "SN-1",
			Status:       model.StatusOperational,
			Location:     "north yard",
			Equipment: []model.Equipment{
				{Type: model.EquipmentCrane, Specs: map[string]string{"capacity": "12t"}},
			},
			ServiceRecords: []model.ServiceRecord{
				{ID: "r1", EquipmentType: model.EquipmentCrane, Description: "hydraulics", PerformedBy: "pat", PerformedAt: performed},
			},
			Tasks: []model.Task{
				{ID: "t1", Title: "Crane maintenance", Status: model.TaskPending, DueDate: performed.AddDate(0, 0, 14)},
			},
			Schedules: []model.MaintenanceSchedule{
				{EquipmentType: model.EquipmentCrane, Interval: model.IntervalSpec{Period: model.PeriodBiweekly}, LastPerformed: &performed, NextDue: performed.AddDate(0, 0, 14)},
			},
			EditPermissions: []string{"driver"},
		},
		{ID: "m2", Name: "Truck 7"},
	}

	require.NoError(t, c.SaveMachines(context.Background(), machines))

	loaded, err := c.LoadMachines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, machines, loaded, "reload must reproduce order and field values")
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SaveMachines(ctx, []model.Machine{{ID: "m1"}, {ID: "m2"}}))
	require.NoError(t, c.SaveMachines(ctx, []model.Machine{{ID: "m1"}}))

	loaded, err := c.LoadMachines(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "m1", loaded[0].ID)
}
