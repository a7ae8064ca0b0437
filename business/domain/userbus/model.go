package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/business/types/name"
	"github.com/sellerdesk/console/business/types/password"
	"github.com/sellerdesk/console/business/types/phone"
	"github.com/sellerdesk/console/business/types/systemrole"
)

// User represents information about an individual user.
type User struct {
	ID           uuid.UUID
	Name         name.Name
	Email        mail.Address
	SystemRole   systemrole.SystemRole
	PasswordHash []byte
	Phone        phone.Null
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	Name       name.Name
	Email      mail.Address
	Phone      phone.Null
	SystemRole systemrole.SystemRole
	Password   password.Password
}

// UpdateUser contains information needed to update a user.
type UpdateUser struct {
	Name       *name.Name
	Email      *mail.Address
	SystemRole *systemrole.SystemRole
	Phone      *phone.Null
	Password   *password.Password
	Enabled    *bool
}
