package repositories

import (
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/mutators"
)

// StaffRepository stores staff members.
type StaffRepository interface {
	Repository[models.StaffMember]
	UpdateStatus(id string, status models.StaffStatus, guard StatusGuard[models.StaffMember]) (models.StaffMember, error)
}

type staffRepository struct {
	*memoryStore[models.StaffMember]
}

// NewStaffRepository creates a new instance of StaffRepository seeded from db.
func NewStaffRepository(db *database.Dataset, ids mutators.IDGenerator) StaffRepository {
	return &staffRepository{memoryStore: newMemoryStore("staff member", db.Staff, ids, nil)}
}

func (r *staffRepository) UpdateStatus(id string, status models.StaffStatus, guard StatusGuard[models.StaffMember]) (models.StaffMember, error) {
	return setStatus(r.memoryStore, id, status, guard)
}

// ScheduleRepository stores planned shifts.
type ScheduleRepository interface {
	Repository[models.ScheduleEntry]
}

// NewScheduleRepository creates a new instance of ScheduleRepository seeded from db.
func NewScheduleRepository(db *database.Dataset, ids mutators.IDGenerator) ScheduleRepository {
	return newMemoryStore("schedule entry", db.Schedule, ids, nil)
}
