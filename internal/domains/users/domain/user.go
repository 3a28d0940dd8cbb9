package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role separates the selling and buying sides of the marketplace.
type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleWholesaler Role = "wholesaler"
	RoleRetailer   Role = "retailer"
	RoleAdmin      Role = "admin"
)

var (
	ErrEmptyID       = errors.New("user id is required")
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrInvalidRole   = errors.New("role is invalid")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
)

// User is a marketplace account.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Role         Role
	PasswordHash string
	County       string
	SubCounty    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds an account with a hashed password.
func NewUser(id, name, email, phone string, role Role, password string, now time.Time) (*User, error) {
	user := &User{
		ID:        strings.TrimSpace(id),
		Role:      role,
		Phone:     strings.TrimSpace(phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// SetName trims and validates the display name.
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail normalizes and validates the login email.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the supplied credentials against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile applies optional profile fields. Empty values leave the
// current field untouched.
func (u *User) UpdateProfile(name, phone, county, subCounty string, now time.Time) error {
	if name != "" {
		if err := u.SetName(name); err != nil {
			return err
		}
	}
	if phone != "" {
		u.Phone = strings.TrimSpace(phone)
	}
	if county != "" {
		u.County = strings.TrimSpace(county)
	}
	if subCounty != "" {
		u.SubCounty = strings.TrimSpace(subCounty)
	}
	u.UpdatedAt = now
	return nil
}

// IsSeller reports whether the account lists produce for sale.
func (u *User) IsSeller() bool {
	return u.Role == RoleFarmer
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyID
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if !isValidRole(u.Role) {
		return ErrInvalidRole
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}

func isValidRole(role Role) bool {
	switch role {
	case RoleFarmer, RoleWholesaler, RoleRetailer, RoleAdmin:
		return true
	default:
		return false
	}
}
