package storeapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellerdesk/console/app/sdk/errs"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/name"
	"github.com/sellerdesk/console/business/types/role"
)

// Store represents information about an individual store.
type Store struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Enabled     bool   `json:"enabled"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (s Store) Encode() ([]byte, string, error) {
	data, err := json.Marshal(s)
	return data, "application/json", err
}

func toAppStore(bus storebus.Store) Store {
	return Store{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Slug:        bus.Slug,
		Enabled:     bus.Enabled,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// NewStore defines the data needed to add a new store.
type NewStore struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required,min=3,max=40"`
}

// Decode implements the web.Decoder interface.
func (app *NewStore) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewStore) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewStore(app NewStore) (storebus.NewStore, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return storebus.NewStore{}, fmt.Errorf("parse name: %w", err)
	}

	bus := storebus.NewStore{
		Name: nme,
		Slug: app.Slug,
	}

	return bus, nil
}

// UpdateStore defines the data needed to update a store.
type UpdateStore struct {
	Name    *string `json:"name"`
	Enabled *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateStore) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

func toBusUpdateStore(app UpdateStore) (storebus.UpdateStore, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return storebus.UpdateStore{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	bus := storebus.UpdateStore{
		Name:    nme,
		Enabled: app.Enabled,
	}

	return bus, nil
}

// Member represents one user's membership in a store.
type Member struct {
	UserID      string `json:"userId"`
	StoreID     string `json:"storeId"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	IsPrimary   bool   `json:"isPrimary"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (m Member) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMember(bus membershipbus.Membership) Member {
	return Member{
		UserID:      bus.UserID.String(),
		StoreID:     bus.StoreID.String(),
		Role:        bus.Role.String(),
		Status:      bus.Status.String(),
		IsPrimary:   bus.IsPrimary,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// Members is the response for a member listing.
type Members struct {
	Items []Member `json:"items"`
}

// Encode implements the web.Encoder interface.
func (m Members) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMembers(bus []membershipbus.Membership) Members {
	items := make([]Member, len(bus))
	for i, m := range bus {
		items[i] = toAppMember(m)
	}

	return Members{Items: items}
}

// NewMember defines the data needed to add a user to a store.
type NewMember struct {
	UserID string `json:"userId" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewMember) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewMember) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewMembership(app NewMember, storeID uuid.UUID) (membershipbus.NewMembership, error) {
	userID, err := uuid.Parse(app.UserID)
	if err != nil {
		return membershipbus.NewMembership{}, fmt.Errorf("parse user id: %w", err)
	}

	r, err := role.Parse(app.Role)
	if err != nil {
		return membershipbus.NewMembership{}, fmt.Errorf("parse role: %w", err)
	}

	bus := membershipbus.NewMembership{
		UserID:  userID,
		StoreID: storeID,
		Role:    r,
		Status:  memberstatus.Active,
	}

	return bus, nil
}

// UpdateMemberRole defines the data needed to change a member's role.
type UpdateMemberRole struct {
	Role string `json:"role" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateMemberRole) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateMemberRole) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

// UpdateMemberStatus defines the data needed to change a member's status.
type UpdateMemberStatus struct {
	Status string `json:"status" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateMemberStatus) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateMemberStatus) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
