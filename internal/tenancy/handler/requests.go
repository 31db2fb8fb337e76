package handler

import (
	"strings"

	dErrors "github.com/ustudiopd/EventLive-sub001/pkg/domain-errors"
)

// CreateAgencyRequest is the HTTP request body for POST /agencies.
type CreateAgencyRequest struct {
	Name string `json:"name"`
}

// Validate checks the agency payload.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateAgencyRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if len(r.Name) > 128 {
		return dErrors.New(dErrors.CodeInvalidInput, "name must be at most 128 characters")
	}
	return nil
}

// CreateClientRequest is the HTTP request body for POST /agencies/{agencyID}/clients.
type CreateClientRequest struct {
	Name string `json:"name"`
}

func (r *CreateClientRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if len(r.Name) > 128 {
		return dErrors.New(dErrors.CodeInvalidInput, "name must be at most 128 characters")
	}
	return nil
}

// CreateWebinarRequest is the HTTP request body for POST /clients/{clientID}/webinars.
// Slug and passcode are optional; detailed slug validation happens in the
// domain model so all entry points agree.
type CreateWebinarRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Passcode string `json:"passcode"`
}

func (r *CreateWebinarRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "title is required")
	}
	if len(r.Title) > 256 {
		return dErrors.New(dErrors.CodeInvalidInput, "title must be at most 256 characters")
	}
	r.Slug = strings.TrimSpace(r.Slug)
	if len(r.Passcode) > 128 {
		return dErrors.New(dErrors.CodeInvalidInput, "passcode must be at most 128 characters")
	}
	return nil
}

// ConsoleAccessRequest is the HTTP request body for POST /webinars/{webinarID}/console.
type ConsoleAccessRequest struct {
	Passcode string `json:"passcode"`
}

// Validate accepts an empty passcode; webinars without one admit any console
// role holder.
func (r *ConsoleAccessRequest) Validate() error {
	if len(r.Passcode) > 128 {
		return dErrors.New(dErrors.CodeInvalidInput, "passcode must be at most 128 characters")
	}
	return nil
}

// CreateDomainRequest is the HTTP request body for POST /agencies/{agencyID}/domains.
type CreateDomainRequest struct {
	Domain string `json:"domain"`
}

func (r *CreateDomainRequest) Validate() error {
	r.Domain = strings.TrimSpace(r.Domain)
	if r.Domain == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "domain is required")
	}
	if len(r.Domain) > 255 {
		return dErrors.New(dErrors.CodeInvalidInput, "domain must be at most 255 characters")
	}
	return nil
}

// AllowedEmailRequest is the HTTP request body for POST /webinars/{webinarID}/allowed-emails.
type AllowedEmailRequest struct {
	Email string `json:"email"`
}

func (r *AllowedEmailRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	if len(r.Email) > 255 || !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeInvalidInput, "email must be a valid address")
	}
	return nil
}
