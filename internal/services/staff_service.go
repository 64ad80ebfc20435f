package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/filters"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/validation"
	"delizzia_backoffice/pkg/utils"
)

// --- Custom Service Errors for Staff ---
var (
	ErrStaffNotFound = errors.New("staff member not found")
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftOverlap  = errors.New("shift overlaps with an existing shift for the staff member")
	ErrStaffInUse    = errors.New("staff member cannot be deleted while scheduled")
)

// --- StaffMember DTOs ---
type CreateStaffMemberRequest struct {
	Name       string               `json:"name"`
	Phone      string               `json:"phone"`
	Email      *string              `json:"email"`
	Position   models.StaffPosition `json:"position"`
	HourlyRate decimal.Decimal      `json:"hourly_rate"`
	StartDate  *models.Date         `json:"start_date"` // defaults to today
	IsActive   *bool                `json:"is_active"`  // defaults to true
}

type UpdateStaffMemberRequest struct {
	Name          *string               `json:"name"`
	Phone         *string               `json:"phone"`
	Email         *string               `json:"email"`
	Position      *models.StaffPosition `json:"position"`
	HourlyRate    *decimal.Decimal      `json:"hourly_rate"`
	StartDate     *models.Date          `json:"start_date"`
	IsActive      *bool                 `json:"is_active"`
	HoursThisWeek *decimal.Decimal      `json:"hours_this_week"`
}

type UpdateStaffStatusRequest struct {
	Status models.StaffStatus `json:"status" binding:"required"`
}

// StaffView is a staff member with this week's pay.
type StaffView struct {
	models.StaffMember
	WeeklySalary decimal.Decimal `json:"weekly_salary"`
}

func NewStaffView(m models.StaffMember) StaffView {
	return StaffView{StaffMember: m, WeeklySalary: rules.WeeklySalary(m.HourlyRate, m.HoursThisWeek)}
}

// Payroll sums weekly salaries for active staff.
type Payroll struct {
	Staff      []StaffView     `json:"staff"`
	TotalHours decimal.Decimal `json:"total_hours"`
	Total      decimal.Decimal `json:"total"`
}

// --- Shift (ScheduleEntry) DTOs ---
// CreateShiftRequest names the staff member by id and carries the display
// name separately; the name is stored as given.
type CreateShiftRequest struct {
	StaffID   string               `json:"staff_id" binding:"required"`
	StaffName string               `json:"staff_name" binding:"required"`
	Position  models.StaffPosition `json:"position" binding:"required"`
	Date      models.Date          `json:"date"`
	StartTime string               `json:"start_time" binding:"required"` // HH:MM
	EndTime   string               `json:"end_time" binding:"required"`   // HH:MM
}

type UpdateShiftRequest struct {
	StaffName *string               `json:"staff_name"`
	Date      *models.Date          `json:"date"`
	StartTime *string               `json:"start_time"`
	EndTime   *string               `json:"end_time"`
	Position  *models.StaffPosition `json:"position"`
}

// DaySchedule lists the shifts of one calendar day.
type DaySchedule struct {
	Date    models.Date            `json:"date"`
	Entries []models.ScheduleEntry `json:"entries"`
	Hours   decimal.Decimal        `json:"hours"`
}

// WeekSchedule is a Sunday-started week of shifts.
type WeekSchedule struct {
	Days       []DaySchedule   `json:"days"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// --- StaffService Interface ---
type StaffService interface {
	// StaffMember methods
	CreateStaffMember(req CreateStaffMemberRequest) (*StaffView, error)
	GetStaffMemberByID(staffID string) (*StaffView, error)
	GetStaffMembers(filters models.StaffFilters) []StaffView
	UpdateStaffMember(staffID string, req UpdateStaffMemberRequest) (*StaffView, error)
	UpdateStaffStatus(staffID string, req UpdateStaffStatusRequest) (*StaffView, error)
	DeleteStaffMember(staffID string) error
	GetPayroll() Payroll
	CountOnDuty() int

	// Shift methods
	CreateShift(req CreateShiftRequest) (*models.ScheduleEntry, error)
	GetShiftByID(shiftID string) (*models.ScheduleEntry, error)
	GetShifts(staffID *string, day string) ([]models.ScheduleEntry, error)
	GetWeekSchedule(day string) (*WeekSchedule, error)
	UpdateShift(shiftID string, req UpdateShiftRequest) (*models.ScheduleEntry, error)
	DeleteShift(shiftID string) error
}

// --- staffService Implementation ---
type staffService struct {
	staffRepo    repositories.StaffRepository
	scheduleRepo repositories.ScheduleRepository
	validator    *validation.Validator
	clock        Clock

	// serialises the overlap check with the write that follows it
	scheduleMu sync.Mutex
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(sr repositories.StaffRepository, schr repositories.ScheduleRepository, v *validation.Validator, clock Clock) StaffService {
	return &staffService{
		staffRepo:    sr,
		scheduleRepo: schr,
		validator:    v,
		clock:        clock,
	}
}

func (s *staffService) CreateStaffMember(req CreateStaffMemberRequest) (*StaffView, error) {
	member := models.StaffMember{
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         utils.NewNullString(strings.TrimSpace(utils.Deref(req.Email))),
		Position:      req.Position,
		HourlyRate:    req.HourlyRate,
		StartDate:     models.NewDate(s.clock.Now()),
		IsActive:      true,
		HoursThisWeek: decimal.Zero,
		Status:        models.StaffOff,
	}
	if req.StartDate != nil {
		member.StartDate = *req.StartDate
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	if err := s.validator.StaffMember(member); err != nil {
		return nil, err
	}

	created, err := s.staffRepo.Create(member)
	if err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	utils.LogInfo("Staff member created", map[string]interface{}{
		"staff_id": created.ID,
		"position": created.Position,
	})
	v := NewStaffView(created)
	return &v, nil
}

func (s *staffService) GetStaffMemberByID(staffID string) (*StaffView, error) {
	m, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	v := NewStaffView(m)
	return &v, nil
}

func (s *staffService) GetStaffMembers(f models.StaffFilters) []StaffView {
	list := filters.Staff(s.staffRepo.List(), f)
	views := make([]StaffView, len(list))
	for i, m := range list {
		views[i] = NewStaffView(m)
	}
	return views
}

func (s *staffService) UpdateStaffMember(staffID string, req UpdateStaffMemberRequest) (*StaffView, error) {
	updated, err := s.staffRepo.Modify(staffID, func(m models.StaffMember) (models.StaffMember, error) {
		if req.Name != nil {
			m.Name = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			m.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Email != nil {
			m.Email = utils.NewNullString(strings.TrimSpace(*req.Email))
		}
		if req.Position != nil {
			m.Position = *req.Position
		}
		if req.HourlyRate != nil {
			m.HourlyRate = *req.HourlyRate
		}
		if req.StartDate != nil {
			m.StartDate = *req.StartDate
		}
		if req.IsActive != nil {
			m.IsActive = *req.IsActive
		}
		if req.HoursThisWeek != nil {
			m.HoursThisWeek = *req.HoursThisWeek
		}
		return m, s.validator.StaffMember(m)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	v := NewStaffView(updated)
	return &v, nil
}

func (s *staffService) UpdateStaffStatus(staffID string, req UpdateStaffStatusRequest) (*StaffView, error) {
	guard := func(models.StaffMember) error {
		if !req.Status.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, string(req.Status))
		}
		return nil
	}
	updated, err := s.staffRepo.UpdateStatus(staffID, req.Status, guard)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	v := NewStaffView(updated)
	return &v, nil
}

func (s *staffService) DeleteStaffMember(staffID string) error {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	for _, e := range s.scheduleRepo.List() {
		if e.StaffID == staffID {
			return ErrStaffInUse
		}
	}
	if err := s.staffRepo.Delete(staffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrStaffNotFound
		}
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return nil
}

func (s *staffService) GetPayroll() Payroll {
	p := Payroll{Staff: []StaffView{}, TotalHours: decimal.Zero, Total: decimal.Zero}
	for _, m := range s.staffRepo.List() {
		if !m.IsActive {
			continue
		}
		v := NewStaffView(m)
		p.Staff = append(p.Staff, v)
		p.TotalHours = p.TotalHours.Add(m.HoursThisWeek)
		p.Total = p.Total.Add(v.WeeklySalary)
	}
	return p
}

// CountOnDuty counts active staff currently working.
func (s *staffService) CountOnDuty() int {
	n := 0
	for _, m := range s.staffRepo.List() {
		if m.IsActive && m.Status == models.StaffWorking {
			n++
		}
	}
	return n
}

// --- Shift Methods ---

// checkOverlap must be called with scheduleMu held.
func (s *staffService) checkOverlap(e models.ScheduleEntry) error {
	for _, other := range s.scheduleRepo.List() {
		if other.ID == e.ID || other.StaffID != e.StaffID || !filters.SameDay(other.Date.Time, e.Date.Time) {
			continue
		}
		overlap, err := rules.ShiftsOverlap(e.StartTime, e.EndTime, other.StartTime, other.EndTime)
		if err != nil {
			return err
		}
		if overlap {
			return fmt.Errorf("%w: %s %s-%s", ErrShiftOverlap, other.Date, other.StartTime, other.EndTime)
		}
	}
	return nil
}

// prepareShift validates e and fills its hours.
func (s *staffService) prepareShift(e models.ScheduleEntry) (models.ScheduleEntry, error) {
	if err := s.validator.ScheduleEntry(e); err != nil {
		return e, err
	}
	hours, err := rules.ScheduleHours(e.StartTime, e.EndTime)
	if err != nil {
		return e, validation.Errors{{Field: "start_time", Reason: err.Error()}}
	}
	e.Hours = hours
	return e, s.checkOverlap(e)
}

func (s *staffService) CreateShift(req CreateShiftRequest) (*models.ScheduleEntry, error) {
	if _, err := s.staffRepo.GetByID(req.StaffID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	entry := models.ScheduleEntry{
		StaffID:   req.StaffID,
		StaffName: strings.TrimSpace(req.StaffName),
		Position:  req.Position,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	entry, err := s.prepareShift(entry)
	if err != nil {
		return nil, err
	}
	created, err := s.scheduleRepo.Create(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}
	utils.LogInfo("Shift scheduled", map[string]interface{}{
		"shift_id": created.ID,
		"staff_id": created.StaffID,
		"date":     created.Date.String(),
	})
	return &created, nil
}

func (s *staffService) GetShiftByID(shiftID string) (*models.ScheduleEntry, error) {
	e, err := s.scheduleRepo.GetByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetShifts lists shifts, optionally for one staff member and one day (YYYY-MM-DD).
func (s *staffService) GetShifts(staffID *string, day string) ([]models.ScheduleEntry, error) {
	entries := s.scheduleRepo.List()
	if day != "" {
		d, err := parseDay(day, s.clock)
		if err != nil {
			return nil, err
		}
		entries = filters.ScheduleForDay(entries, d)
	}
	if staffID != nil {
		entries = filters.Where(entries, func(e models.ScheduleEntry) bool { return e.StaffID == *staffID })
	}
	return entries, nil
}

// GetWeekSchedule groups the week containing day (today when empty) by date.
func (s *staffService) GetWeekSchedule(day string) (*WeekSchedule, error) {
	d, err := parseDay(day, s.clock)
	if err != nil {
		return nil, err
	}
	entries := s.scheduleRepo.List()
	week := &WeekSchedule{TotalHours: decimal.Zero}
	for _, date := range filters.WeekDays(d) {
		ds := DaySchedule{Date: models.NewDate(date), Entries: filters.ScheduleForDay(entries, date), Hours: decimal.Zero}
		sort.SliceStable(ds.Entries, func(i, j int) bool { return ds.Entries[i].StartTime < ds.Entries[j].StartTime })
		for _, e := range ds.Entries {
			ds.Hours = ds.Hours.Add(e.Hours)
		}
		week.TotalHours = week.TotalHours.Add(ds.Hours)
		week.Days = append(week.Days, ds)
	}
	return week, nil
}

func (s *staffService) UpdateShift(shiftID string, req UpdateShiftRequest) (*models.ScheduleEntry, error) {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	e, err := s.scheduleRepo.GetByID(shiftID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	if req.StaffName != nil {
		e.StaffName = strings.TrimSpace(*req.StaffName)
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	e, err = s.prepareShift(e)
	if err != nil {
		return nil, err
	}
	updated, err := s.scheduleRepo.Update(e)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return &updated, nil
}

func (s *staffService) DeleteShift(shiftID string) error {
	s.scheduleMu.Lock()
	defer s.scheduleMu.Unlock()

	if err := s.scheduleRepo.Delete(shiftID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

