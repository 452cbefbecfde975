package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is an account plus its delivery profile. Card details are never stored;
// the payment gateway holds them.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"addressLine1" gorm:"column:address_line1"`
	AddressLine2 string    `json:"addressLine2" gorm:"column:address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zipCode"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DeliveryAddress joins the saved address lines, or returns "" when none is saved
func (u *User) DeliveryAddress() string {
	if u.AddressLine1 == "" {
		return ""
	}
	parts := []string{u.AddressLine1}
	if u.AddressLine2 != "" {
		parts = append(parts, u.AddressLine2)
	}
	locality := strings.TrimSpace(strings.Join([]string{u.City, u.State, u.ZipCode}, " "))
	if locality != "" {
		parts = append(parts, locality)
	}
	return strings.Join(parts, ", ")
}

// ProfilePatch is a partial profile update; nil fields are left alone
type ProfilePatch struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zipCode"`
}

// Updates returns the column map gorm should write
func (p ProfilePatch) Updates() map[string]interface{} {
	update := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			update[col] = *v
		}
	}
	set("first_name", p.FirstName)
	set("last_name", p.LastName)
	set("phone", p.Phone)
	set("address_line1", p.AddressLine1)
	set("address_line2", p.AddressLine2)
	set("city", p.City)
	set("state", p.State)
	set("zip_code", p.ZipCode)
	return update
}
