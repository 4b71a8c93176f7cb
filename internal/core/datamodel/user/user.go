package user

import "time"

// Known roles. A user seen for the first time is a borrower unless the
// caller says otherwise.
const (
	RoleBorrower = "borrower"
	RoleManager  = "manager"
	RoleAdmin    = "admin"

	DefaultRole = RoleBorrower

	StatusActive = "active"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleBorrower, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User is an identity plus role record. Email is the unique business key;
// rows are upserted on login and never hard-deleted.
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"column:role;default:borrower"`
	Status       string    `gorm:"column:status;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	LastLoggedIn time.Time `gorm:"column:last_logged_in"`
}

func (User) TableName() string {
	return "users"
}
