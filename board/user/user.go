package user

import (
	"time"

	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Email        kernel.Email  `db:"email" json:"email"`
	PasswordHash string        `db:"password" json:"-"`
	FullName     string        `db:"full_name" json:"full_name"`
	Role         auth.Role     `db:"role" json:"role"`
	Phone        string        `db:"phone" json:"phone,omitempty"`
	CompanyName  string        `db:"company_name" json:"company_name,omitempty"`
	IsActive     bool          `db:"is_active" json:"is_active"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// IsRecruiter checks if the user posts jobs
func (u *User) IsRecruiter() bool {
	return u.Role == auth.RoleRecruiter
}

// IsAdmin checks if the user administers the board
func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}
