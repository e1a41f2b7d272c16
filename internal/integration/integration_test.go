// Package integration exercises the full maintenance pipeline over real
// sqlite databases: record an event, watch it land in the local cache and the
// remote mirror, and reload it the way a restart would.
package integration

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"equipment-maintenance-backend/internal/access"
	"equipment-maintenance-backend/internal/cache"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/recorder"
	"equipment-maintenance-backend/internal/remote"
	"equipment-maintenance-backend/internal/schedule"
	"equipment-maintenance-backend/internal/store"
	"equipment-maintenance-backend/internal/syncer"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)
	return db
}

func newRemoteStore(t *testing.T) (remote.Store, *gorm.DB) {
	t.Helper()
	db := newSQLiteDB(t)
	require.NoError(t, db.AutoMigrate(&remote.MachineRow{}, &remote.MaintenanceRecordRow{}, &remote.TaskRow{}))
	return remote.NewGormStore(db), db
}

func TestMaintenanceLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remoteStore, remoteDB := newRemoteStore(t)
	localCache, err := cache.NewWithDB(newSQLiteDB(t))
	require.NoError(t, err)

	logger := log.New(io.Discard, "", 0)
	syncManager := syncer.NewManager(localCache, remoteStore, 2, time.Millisecond, logger)
	go syncManager.Run(ctx)

	entityStore := store.New(syncManager)
	machines, source := syncManager.Load(ctx)
	require.Equal(t, syncer.SourceRemote, source, "an empty but reachable remote is still the remote")
	entityStore.Seed(machines)

	rec := recorder.New(entityStore, schedule.NewEngine(nil))
	day := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	rec.Clock = func() time.Time { return day }

	admin := access.Authenticated("sam", access.RoleAdmin)
	driver := access.Authenticated("jo", access.RoleDriver)

	m, err := rec.AddMachine(ctx, admin, model.Machine{
		Name:         "Rig 4",
		Model:        "V80",
		SerialNumber: "SN-1",
		Equipment:    []model.Equipment{{Type: model.EquipmentCrane}},
	})
	require.NoError(t, err)

	// A driver marks the crane lubricated. Cranes default to a biweekly
	// interval, so the schedule and the spawned task land on Jan 15.
	_, err = rec.RecordLubrication(ctx, driver, m.ID, model.EquipmentCrane, "boom pivots", "", time.Time{})
	require.NoError(t, err)

	got, err := entityStore.Machine(m.ID)
	require.NoError(t, err)
	require.Len(t, got.LubricationRecords, 1)
	require.NotNil(t, got.Schedule(model.EquipmentCrane))
	wantDue := day.AddDate(0, 0, 14)
	assert.Equal(t, wantDue, got.Schedule(model.EquipmentCrane).NextDue)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, wantDue, got.Tasks[0].DueDate)

	// The background push mirrors the snapshot to the remote store.
	require.Eventually(t, func() bool {
		mirrored, err := remoteStore.FetchMachines(ctx)
		return err == nil && len(mirrored) == 1 && len(mirrored[0].LubricationRecords) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// A restart with the remote reachable seeds from the remote.
	reloaded, source := syncManager.Load(ctx)
	assert.Equal(t, syncer.SourceRemote, source)
	require.Len(t, reloaded, 1)
	assert.Equal(t, got.ID, reloaded[0].ID)
	assert.Equal(t, got.Tasks, reloaded[0].Tasks)
	assert.Equal(t, got.Schedules, reloaded[0].Schedules)

	// With the remote down, the durable cache still has the snapshot.
	cancel()
	sqlDB, err := remoteDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	cached, source := syncManager.Load(context.Background())
	assert.Equal(t, syncer.SourceCache, source)
	require.Len(t, cached, 1)
	assert.Equal(t, got.ID, cached[0].ID)
	assert.Len(t, cached[0].LubricationRecords, 1)
}

func TestRejectedEventLeavesNothingBehind(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remoteStore, _ := newRemoteStore(t)
	localCache, err := cache.NewWithDB(newSQLiteDB(t))
	require.NoError(t, err)

	syncManager := syncer.NewManager(localCache, remoteStore, 2, time.Millisecond, log.New(io.Discard, "", 0))
	entityStore := store.New(syncManager)
	rec := recorder.New(entityStore, schedule.NewEngine(nil))

	admin := access.Authenticated("sam", access.RoleAdmin)
	m, err := rec.AddMachine(ctx, admin, model.Machine{Name: "Truck 7", SerialNumber: "SN-7"})
	require.NoError(t, err)

	_, err = rec.RecordService(ctx, access.Public(), m.ID, model.EquipmentTruck, "oil change", "", nil)
	var perm *model.PermissionError
	require.ErrorAs(t, err, &perm)

	got, err := entityStore.Machine(m.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ServiceRecords)
	assert.Empty(t, got.Tasks)

	cached, err := localCache.LoadMachines(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Empty(t, cached[0].ServiceRecords, "a rejected event must not reach the cache")
}
