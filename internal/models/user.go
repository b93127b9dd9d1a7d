package models

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// User is an employee account. Role is the single source of truth for
// privileges; is_admin in API responses is derived from it.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	Department string `gorm:"not null" json:"department"`
	Role       string `gorm:"size:20;not null;default:'employee'" json:"role"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
