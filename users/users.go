// Package users is the client for staff accounts: admins, directors,
// teachers, auxiliaries, and secretaries. The user-management API is
// privileged, so every call carries the caller's identity headers.
package users

import (
	"context"

	"github.com/pkg/errors"

	"github.com/schoolctl/schoolctl/api"
	"github.com/schoolctl/schoolctl/session"
)

// Account mirrors the backend's staff-account schema.
type Account struct {
	ID            string       `json:"id,omitempty"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	DocumentID    string       `json:"documentId"` // national identity document, 8 digits
	Phone         string       `json:"phone,omitempty"`
	Role          session.Role `json:"role"`
	InstitutionID string       `json:"institutionId,omitempty"`
	HeadquarterID string       `json:"headquarterId,omitempty"`
	Active        *bool        `json:"active,omitempty"` // nil means "leave unchanged"
}

// FullName is the display name cached by the UI layer.
func (a Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}

// Service exposes staff-account CRUD over the authenticated client.
type Service struct {
	client  *api.Client
	baseURL string
}

// NewService creates the users client. baseURL is the user API root.
func NewService(client *api.Client, baseURL string) (*Service, error) {
	if client == nil {
		return nil, errors.New("[users.NewService] api client is required")
	}
	if baseURL == "" {
		return nil, errors.New("[users.NewService] base URL is required")
	}
	return &Service{client: client, baseURL: baseURL}, nil
}

// ListByRole returns the accounts holding one role.
func (s *Service) ListByRole(ctx context.Context, role session.Role) (api.Result[[]Account], error) {
	url := s.baseURL + "/accounts?role=" + string(role)
	return api.Get[[]Account](ctx, s.client, url, api.Privileged())
}

func (s *Service) List(ctx context.Context) (api.Result[[]Account], error) {
	return api.Get[[]Account](ctx, s.client, s.baseURL+"/accounts", api.Privileged())
}

func (s *Service) Get(ctx context.Context, id string) (api.Result[Account], error) {
	return api.Get[Account](ctx, s.client, s.baseURL+"/accounts/"+id, api.Privileged())
}

func (s *Service) Create(ctx context.Context, acc Account) (api.Result[Account], error) {
	if err := acc.Validate(); err != nil {
		return api.Result[Account]{}, err
	}
	return api.Post[Account](ctx, s.client, s.baseURL+"/accounts", acc, api.Privileged())
}

func (s *Service) Update(ctx context.Context, id string, acc Account) (api.Result[Account], error) {
	if err := acc.Validate(); err != nil {
		return api.Result[Account]{}, err
	}
	return api.Put[Account](ctx, s.client, s.baseURL+"/accounts/"+id, acc, api.Privileged())
}

// SetActive enables or disables an account without editing the profile.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (api.Result[Account], error) {
	body := map[string]bool{"active": active}
	return api.Patch[Account](ctx, s.client, s.baseURL+"/accounts/"+id, body, api.Privileged())
}

func (s *Service) Delete(ctx context.Context, id string) (api.Result[struct{}], error) {
	return api.Delete(ctx, s.client, s.baseURL+"/accounts/"+id, api.Privileged())
}
