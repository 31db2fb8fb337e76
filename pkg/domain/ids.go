package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// Typed IDs keep the four tenancy scopes distinct at compile time. A guard
// that takes an AgencyID cannot be handed a ClientID by accident, which is
// the cheapest tenant-isolation check we have.
//
// Construct via the Parse functions at trust boundaries; direct casting
// bypasses validation.
type (
	UserID    uuid.UUID
	AgencyID  uuid.UUID
	ClientID  uuid.UUID
	WebinarID uuid.UUID
	DomainID  uuid.UUID
)

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id AgencyID) String() string  { return uuid.UUID(id).String() }
func (id ClientID) String() string  { return uuid.UUID(id).String() }
func (id WebinarID) String() string { return uuid.UUID(id).String() }
func (id DomainID) String() string  { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AgencyID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ClientID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id WebinarID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id DomainID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// Text marshaling so the IDs serialize as UUID strings in JSON bodies and
// log output. Defined types do not inherit uuid.UUID's methods.

func (id UserID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id AgencyID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id ClientID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id WebinarID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id DomainID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *AgencyID) UnmarshalText(b []byte) error {
	parsed, err := ParseAgencyID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ClientID) UnmarshalText(b []byte) error {
	parsed, err := ParseClientID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *WebinarID) UnmarshalText(b []byte) error {
	parsed, err := ParseWebinarID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DomainID) UnmarshalText(b []byte) error {
	parsed, err := ParseDomainID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

func ParseAgencyID(s string) (AgencyID, error) {
	u, err := parseUUID(s)
	return AgencyID(u), err
}

func ParseClientID(s string) (ClientID, error) {
	u, err := parseUUID(s)
	return ClientID(u), err
}

func ParseWebinarID(s string) (WebinarID, error) {
	u, err := parseUUID(s)
	return WebinarID(u), err
}

func ParseDomainID(s string) (DomainID, error) {
	u, err := parseUUID(s)
	return DomainID(u), err
}

func NewUserID() UserID       { return UserID(uuid.New()) }
func NewAgencyID() AgencyID   { return AgencyID(uuid.New()) }
func NewClientID() ClientID   { return ClientID(uuid.New()) }
func NewWebinarID() WebinarID { return WebinarID(uuid.New()) }
func NewDomainID() DomainID   { return DomainID(uuid.New()) }
