package models

import "github.com/shopspring/decimal"

// StaffPosition is an employee's role.
type StaffPosition string

const (
	PositionHeadCook StaffPosition = "cocinero-principal"
	PositionKitchen  StaffPosition = "ayudante-cocina"
	PositionDelivery StaffPosition = "delivery"
	PositionCashier  StaffPosition = "cajero"
	PositionCleaning StaffPosition = "limpieza"
	PositionManager  StaffPosition = "gerente"
)

var StaffPositions = []StaffPosition{
	PositionHeadCook, PositionKitchen, PositionDelivery, PositionCashier, PositionCleaning, PositionManager,
}

func (p StaffPosition) IsValid() bool {
	switch p {
	case PositionHeadCook, PositionKitchen, PositionDelivery, PositionCashier, PositionCleaning, PositionManager:
		return true
	default:
		return false
	}
}

// StaffStatus is what an employee is doing right now.
type StaffStatus string

const (
	StaffWorking StaffStatus = "working"
	StaffOff     StaffStatus = "off"
	StaffBreak   StaffStatus = "break"
)

var StaffStatuses = []StaffStatus{StaffWorking, StaffOff, StaffBreak}

func (s StaffStatus) IsValid() bool {
	switch s {
	case StaffWorking, StaffOff, StaffBreak:
		return true
	default:
		return false
	}
}

// StaffMember represents an employee
type StaffMember struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name" validate:"required"`
	Phone         string          `json:"phone" yaml:"phone" validate:"required"`
	Email         *string         `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Position      StaffPosition   `json:"position" yaml:"position" validate:"enum"`
	HourlyRate    decimal.Decimal `json:"hourly_rate" yaml:"hourly_rate" validate:"gt=0"`
	StartDate     Date            `json:"start_date" yaml:"start_date"`
	IsActive      bool            `json:"is_active" yaml:"is_active"`
	HoursThisWeek decimal.Decimal `json:"hours_this_week" yaml:"hours_this_week" validate:"gte=0"`
	Status        StaffStatus     `json:"status" yaml:"status" validate:"enum"`
}

func (s StaffMember) GetID() string { return s.ID }

func (s StaffMember) WithID(id string) StaffMember {
	s.ID = id
	return s
}

func (s StaffMember) WithStatus(st StaffStatus) StaffMember {
	s.Status = st
	return s
}

// ScheduleEntry is a planned shift. StaffID is a lookup reference only;
// StaffName is stored independently for display.
type ScheduleEntry struct {
	ID        string          `json:"id" yaml:"id"`
	StaffID   string          `json:"staff_id" yaml:"staff_id" validate:"required"`
	StaffName string          `json:"staff_name" yaml:"staff_name" validate:"required"`
	Position  StaffPosition   `json:"position" yaml:"position" validate:"enum"`
	Date      Date            `json:"date" yaml:"date"`
	StartTime string          `json:"start_time" yaml:"start_time" validate:"required"`
	EndTime   string          `json:"end_time" yaml:"end_time" validate:"required"`
	Hours     decimal.Decimal `json:"hours" yaml:"hours"`
}

func (e ScheduleEntry) GetID() string { return e.ID }

func (e ScheduleEntry) WithID(id string) ScheduleEntry {
	e.ID = id
	return e
}

// StaffFilters narrows staff listings.
type StaffFilters struct {
	Search   string `form:"search"`
	Position string `form:"position"`
	Status   string `form:"status"`
}
