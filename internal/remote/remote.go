// Package remote is the client side of the remote persistent store. The
// remote is a lagging mirror of the local cache: snapshot pushes are
// best-effort and the sync manager retries them.
package remote

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equipment-maintenance-backend/internal/model"
)

// Store defines the read/write contract against the remote persistent store.
type Store interface {
	FetchMachines(ctx context.Context) ([]model.Machine, error)
	SaveSnapshot(ctx context.Context, machines []model.Machine) error
	DB() *gorm.DB
}

// gormRemote implements Store using GORM.
type gormRemote struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed remote store.
func NewGormStore(db *gorm.DB) Store {
	return &gormRemote{db: db}
}

// DB exposes the underlying connection for collaborators that keep their own
// tables next to the machine data (push subscriptions).
func (s *gormRemote) DB() *gorm.DB { return s.db }

// FetchMachines reads the machine, record and task tables and assembles full
// machine values.
func (s *gormRemote) FetchMachines(ctx context.Context) ([]model.Machine, error) {
	var rows []MachineRow
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch machines: %w", err)
	}

	var recordRows []MaintenanceRecordRow
	if err := s.db.WithContext(ctx).Order("performed_at, id").Find(&recordRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch maintenance records: %w", err)
	}

	var taskRows []TaskRow
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&taskRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	machines := make([]model.Machine, 0, len(rows))
	byID := make(map[string]int, len(rows))
	for _, row := range rows {
		machines = append(machines, model.Machine{
			ID:              row.ID,
			Name:            row.Name,
			Model:           row.Model,
			SerialNumber:    row.SerialNumber,
			Status:          model.MachineStatus(row.Status),
			Location:        row.Location,
			Equipment:       row.Equipment,
			Schedules:       row.Schedules,
			EditPermissions: row.EditPermissions,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
		byID[row.ID] = len(machines) - 1
	}

	for _, r := range recordRows {
		i, ok := byID[r.MachineID]
		if !ok {
			continue
		}
		switch r.Kind {
		case RecordKindService:
			machines[i].ServiceRecords = append(machines[i].ServiceRecords, model.ServiceRecord{
				ID:            r.ID,
				EquipmentType: model.EquipmentType(r.EquipmentType),
				Description:   r.Description,
				PerformedBy:   r.PerformedBy,
				Issues:        r.Issues,
				PerformedAt:   r.PerformedAt,
			})
		case RecordKindLubrication:
			machines[i].LubricationRecords = append(machines[i].LubricationRecords, model.LubricationRecord{
				ID:            r.ID,
				EquipmentType: model.EquipmentType(r.EquipmentType),
				Notes:         r.Notes,
				PerformedBy:   r.PerformedBy,
				PerformedAt:   r.PerformedAt,
			})
		}
	}

	for _, tr := range taskRows {
		i, ok := byID[tr.MachineID]
		if !ok {
			continue
		}
		machines[i].Tasks = append(machines[i].Tasks, model.Task{
			ID:            tr.ID,
			Title:         tr.Title,
			EquipmentType: model.EquipmentType(tr.EquipmentType),
			Status:        model.TaskStatus(tr.Status),
			DueDate:       tr.DueDate,
			AssignedTo:    tr.AssignedTo,
			CreatedAt:     tr.CreatedAt,
		})
	}

	return machines, nil
}

// SaveSnapshot mirrors the full local snapshot into the remote tables in one
// transaction: machines are batch-upserted and pruned, history rows are
// append-only, task rows are upserted because completion mutates them.
func (s *gormRemote) SaveSnapshot(ctx context.Context, machines []model.Machine) error {
	machineRows, recordRows, taskRows := snapshotRows(machines)
	ids := make([]string, len(machineRows))
	for i, row := range machineRows {
		ids[i] = row.ID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(machineRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"name", "model", "serial_number", "status", "equipment",
					"location", "schedules", "edit_permissions", "updated_at",
				}),
			}).Create(&machineRows).Error; err != nil {
				return fmt.Errorf("failed to upsert machines: %w", err)
			}
		}

		// Prune machines deleted locally, along with their history.
		prune := tx.Where("1 = 1")
		if len(ids) > 0 {
			prune = tx.Where("id NOT IN ?", ids)
		}
		if err := prune.Delete(&MachineRow{}).Error; err != nil {
			return fmt.Errorf("failed to prune machines: %w", err)
		}
		pruneOwned := func(dest any) error {
			q := tx.Where("1 = 1")
			if len(ids) > 0 {
				q = tx.Where("machine_id NOT IN ?", ids)
			}
			return q.Delete(dest).Error
		}
		if err := pruneOwned(&MaintenanceRecordRow{}); err != nil {
			return fmt.Errorf("failed to prune maintenance records: %w", err)
		}
		if err := pruneOwned(&TaskRow{}); err != nil {
			return fmt.Errorf("failed to prune tasks: %w", err)
		}

		if len(recordRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&recordRows).Error; err != nil {
				return fmt.Errorf("failed to append maintenance records: %w", err)
			}
		}

		if len(taskRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "due_date", "assigned_to"}),
			}).Create(&taskRows).Error; err != nil {
				return fmt.Errorf("failed to upsert tasks: %w", err)
			}
		}
		return nil
	})
}

func snapshotRows(machines []model.Machine) ([]MachineRow, []MaintenanceRecordRow, []TaskRow) {
	var machineRows []MachineRow
	var recordRows []MaintenanceRecordRow
	var taskRows []TaskRow

	for _, m := range machines {
		machineRows = append(machineRows, MachineRow{
			ID:              m.ID,
			Name:            m.Name,
			Model:           m.Model,
			SerialNumber:    m.SerialNumber,
			Status:          string(m.Status),
			Equipment:       m.Equipment,
			Location:        m.Location,
			Schedules:       m.Schedules,
			EditPermissions: m.EditPermissions,
			CreatedAt:       m.CreatedAt,
			UpdatedAt:       m.UpdatedAt,
		})
		for _, r := range m.ServiceRecords {
			recordRows = append(recordRows, MaintenanceRecordRow{
				ID:            r.ID,
				MachineID:     m.ID,
				Kind:          RecordKindService,
				EquipmentType: string(r.EquipmentType),
				Description:   r.Description,
				PerformedBy:   r.PerformedBy,
				Issues:        r.Issues,
				PerformedAt:   r.PerformedAt,
			})
		}
		for _, r := range m.LubricationRecords {
			recordRows = append(recordRows, MaintenanceRecordRow{
				ID:            r.ID,
				MachineID:     m.ID,
				Kind:          RecordKindLubrication,
				EquipmentType: string(r.EquipmentType),
				Notes:         r.Notes,
				PerformedBy:   r.PerformedBy,
				PerformedAt:   r.PerformedAt,
			})
		}
		for _, task := range m.Tasks {
			taskRows = append(taskRows, TaskRow{
				ID:            task.ID,
				MachineID:     m.ID,
				Title:         task.Title,
				EquipmentType: string(task.EquipmentType),
				Status:        string(task.Status),
				DueDate:       task.DueDate,
				AssignedTo:    task.AssignedTo,
				CreatedAt:     task.CreatedAt,
			})
		}
	}

	sort.SliceStable(recordRows, func(i, j int) bool {
		return recordRows[i].PerformedAt.Before(recordRows[j].PerformedAt)
	})
	return machineRows, recordRows, taskRows
}
