package mapper

import (
	"time"

	userdomain "github.com/sokoyetu/soko-api/internal/domains/users/domain"
)

// User is the transport-level account payload. The password hash never
// leaves the service.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	County    string    `json:"county,omitempty"`
	SubCounty string    `json:"subCounty,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainUser converts a domain account into its transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		County:    user.County,
		SubCounty: user.SubCounty,
		CreatedAt: user.CreatedAt,
	}
}
