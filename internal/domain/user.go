package domain

import "time"

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRoleEmployee UserRole = "EMPLOYEE"
	UserRoleMember   UserRole = "MEMBER"
)

// User is a borrower or staff member. Credentials live with the auth provider.
type User struct {
	ID        int32     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedOn time.Time `json:"created_on" db:"created_on"`
}
