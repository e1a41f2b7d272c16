// Package recorder applies maintenance events to the entity store. Each
// operation checks the caller through the access package, computes the full
// next machine value, and commits it in a single snapshot write, so a record
// is never visible without its schedule and follow-up task.
package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"equipment-maintenance-backend/internal/access"
	"equipment-maintenance-backend/internal/model"
	"equipment-maintenance-backend/internal/schedule"
	"equipment-maintenance-backend/internal/store"
)

// Recorder mutates machines in response to maintenance events.
type Recorder struct {
	store  *store.Store
	engine *schedule.Engine

	// Clock is swappable in tests.
	Clock func() time.Time

	// notify, when set, is called with the machine id after a commit that
	// appended a new due task.
	notify func(machineID string)
}

// New creates a recorder over the given store and schedule engine.
func New(s *store.Store, eng *schedule.Engine) *Recorder {
	return &Recorder{store: s, engine: eng, Clock: time.Now}
}

// SetNotifier installs a hook invoked after a commit that created a task.
func (r *Recorder) SetNotifier(fn func(machineID string)) {
	r.notify = fn
}

// RecordService appends an immutable service record, advances the matching
// schedule and appends a pending follow-up task due at the new next-due
// date.
func (r *Recorder) RecordService(ctx context.Context, session access.Session, machineID string, et model.EquipmentType, description, performer string, issues []string) (model.ServiceRecord, error) {
	if !access.CanAddServiceRecord(session) {
		return model.ServiceRecord{}, &model.PermissionError{Operation: "record service"}
	}
	if description == "" {
		return model.ServiceRecord{}, &model.ValidationError{Field: "description", Reason: "required"}
	}
	if et == "" {
		return model.ServiceRecord{}, &model.ValidationError{Field: "equipmentType", Reason: "required"}
	}
	if performer == "" {
		performer = session.Performer()
	}

	now := r.Clock()
	record := model.ServiceRecord{
		ID:            uuid.NewString(),
		EquipmentType: et,
		Description:   description,
		PerformedBy:   performer,
		Issues:        append([]string(nil), issues...),
		PerformedAt:   now,
	}

	err := r.store.MutateMachine(ctx, machineID, func(m *model.Machine) error {
		if !m.HasEquipmentType(et) {
			return &model.ValidationError{Field: "equipmentType", Reason: fmt.Sprintf("machine has no %s equipment", et)}
		}
		m.ServiceRecords = append(m.ServiceRecords, record)
		return r.rollForward(m, et, now)
	})
	if err != nil {
		return model.ServiceRecord{}, err
	}
	r.taskAdded(machineID)
	return record, nil
}

// RecordLubrication appends an immutable lubrication record performed at the
// given time (zero means now) and rolls the schedule forward from it.
func (r *Recorder) RecordLubrication(ctx context.Context, session access.Session, machineID string, et model.EquipmentType, notes, performer string, at time.Time) (model.LubricationRecord, error) {
	if !access.CanMarkLubrication(session) {
		return model.LubricationRecord{}, &model.PermissionError{Operation: "record lubrication"}
	}
	if et == "" {
		return model.LubricationRecord{}, &model.ValidationError{Field: "equipmentType", Reason: "required"}
	}
	if performer == "" {
		performer = session.Performer()
	}
	if at.IsZero() {
		at = r.Clock()
	}

	record := model.LubricationRecord{
		ID:            uuid.NewString(),
		EquipmentType: et,
		Notes:         notes,
		PerformedBy:   performer,
		PerformedAt:   at,
	}

	err := r.store.MutateMachine(ctx, machineID, func(m *model.Machine) error {
		if !m.HasEquipmentType(et) {
			return &model.ValidationError{Field: "equipmentType", Reason: fmt.Sprintf("machine has no %s equipment", et)}
		}
		m.LubricationRecords = append(m.LubricationRecords, record)
		return r.rollForward(m, et, at)
	})
	if err != nil {
		return model.LubricationRecord{}, err
	}
	r.taskAdded(machineID)
	return record, nil
}

// rollForward advances the machine's schedule for the equipment type from
// the event time and appends the follow-up task that makes the new due date
// visible as actionable work.
func (r *Recorder) rollForward(m *model.Machine, et model.EquipmentType, eventAt time.Time) error {
	sched, err := r.engine.EnsureSchedule(m, et, eventAt)
	if err != nil {
		return err
	}
	if err := r.engine.Advance(sched, eventAt); err != nil {
		return err
	}
	m.Tasks = append(m.Tasks, model.Task{
		ID:            uuid.NewString(),
		Title:         taskTitle(et),
		EquipmentType: et,
		Status:        model.TaskPending,
		DueDate:       sched.NextDue,
		CreatedAt:     eventAt,
	})
	m.UpdatedAt = eventAt
	return nil
}

func taskTitle(et model.EquipmentType) string {
	return fmt.Sprintf("%s maintenance due", et)
}

// CompleteTask marks a task completed and records who completed it.
// Completing an already-completed task is a no-op, not an error, so a
// double-submitted form cannot crash or reassign the task.
func (r *Recorder) CompleteTask(ctx context.Context, session access.Session, taskID, completedBy string) error {
	if !access.CanAddTask(session) {
		return &model.PermissionError{Operation: "complete task"}
	}
	if completedBy == "" {
		completedBy = session.Performer()
	}

	machineID := ""
	for _, m := range r.store.Machines() {
		if t := m.Task(taskID); t != nil {
			if t.Status == model.TaskCompleted {
				return nil
			}
			machineID = m.ID
			break
		}
	}
	if machineID == "" {
		return &model.NotFoundError{Entity: "task", ID: taskID}
	}

	now := r.Clock()
	return r.store.MutateMachine(ctx, machineID, func(m *model.Machine) error {
		t := m.Task(taskID)
		if t == nil {
			return &model.NotFoundError{Entity: "task", ID: taskID}
		}
		if t.Status == model.TaskCompleted {
			return nil
		}
		t.Status = model.TaskCompleted
		t.AssignedTo = completedBy
		m.UpdatedAt = now
		return nil
	})
}

// AddTask appends a manually created pending task.
func (r *Recorder) AddTask(ctx context.Context, session access.Session, machineID, title string, et model.EquipmentType, due time.Time) (model.Task, error) {
	if !access.CanAddTask(session) {
		return model.Task{}, &model.PermissionError{Operation: "add task"}
	}
	if title == "" {
		return model.Task{}, &model.ValidationError{Field: "title", Reason: "required"}
	}

	now := r.Clock()
	task := model.Task{
		ID:            uuid.NewString(),
		Title:         title,
		EquipmentType: et,
		Status:        model.TaskPending,
		DueDate:       due,
		CreatedAt:     now,
	}
	err := r.store.MutateMachine(ctx, machineID, func(m *model.Machine) error {
		m.Tasks = append(m.Tasks, task)
		m.UpdatedAt = now
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	r.taskAdded(machineID)
	return task, nil
}

// AddMachine registers a new machine. The id is assigned here; callers
// supply the descriptive fields and equipment.
func (r *Recorder) AddMachine(ctx context.Context, session access.Session, m model.Machine) (model.Machine, error) {
	if !access.HasRank(session, access.RoleMechanic) {
		return model.Machine{}, &model.PermissionError{Operation: "add machine"}
	}
	if m.Name == "" {
		return model.Machine{}, &model.ValidationError{Field: "name", Reason: "required"}
	}
	if m.SerialNumber == "" {
		return model.Machine{}, &model.ValidationError{Field: "serialNumber", Reason: "required"}
	}

	now := r.Clock()
	m.ID = uuid.NewString()
	if m.Status == "" {
		m.Status = model.StatusOperational
	}
	m.CreatedAt = now
	m.UpdatedAt = now

	err := r.store.Mutate(ctx, func(machines []model.Machine) ([]model.Machine, error) {
		return append(machines, m), nil
	})
	if err != nil {
		return model.Machine{}, err
	}
	return m, nil
}

// DeleteMachine removes a machine and discards its history.
func (r *Recorder) DeleteMachine(ctx context.Context, session access.Session, machineID string) error {
	m, err := r.store.Machine(machineID)
	if err != nil {
		return err
	}
	if !access.CanEditMachine(session, &m) {
		return &model.PermissionError{Operation: "delete machine"}
	}

	return r.store.Mutate(ctx, func(machines []model.Machine) ([]model.Machine, error) {
		out := machines[:0]
		for _, existing := range machines {
			if existing.ID != machineID {
				out = append(out, existing)
			}
		}
		return out, nil
	})
}

func (r *Recorder) taskAdded(machineID string) {
	if r.notify != nil {
		r.notify(machineID)
	}
}
