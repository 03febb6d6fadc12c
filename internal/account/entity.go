// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

type Account struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Name      string     `db:"name"`
	Phone     string     `db:"phone"`
	PhotoURL  string     `db:"photo_url"`
	Role      string     `db:"role"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleTutor || role == RoleAdmin
}
