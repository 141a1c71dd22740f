package domain

import "time"

// StaffRole enumerates internal operator roles.
type StaffRole string

const (
	StaffRoleCareWorker StaffRole = "CARE_WORKER"
	StaffRoleManager    StaffRole = "MANAGER"
	StaffRoleAdmin      StaffRole = "ADMIN"
)

// StaffMember models a care worker, manager or administrator account.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
