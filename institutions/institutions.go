// Package institutions is the client for the institution-management API.
package institutions

import (
	"context"

	"github.com/pkg/errors"

	"github.com/schoolctl/schoolctl/api"
)

// Level classifies an institution by the stage of schooling it offers.
type Level string

const (
	LevelInitial   Level = "INITIAL"
	LevelPrimary   Level = "PRIMARY"
	LevelSecondary Level = "SECONDARY"
)

// Theme is the institution's branding, carried as plain data. Rendering
// applies it conditionally; nothing mutates global styles at runtime.
type Theme struct {
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	LogoPosition   string `json:"logoPosition,omitempty"` // "left" or "center"
}

// Institution mirrors the backend schema.
type Institution struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	ModularCode    string `json:"modularCode"` // ministry registry code
	Level          Level  `json:"level,omitempty"`
	Address        string `json:"address,omitempty"`
	ManagementUnit string `json:"managementUnit,omitempty"` // local education authority
	Phone          string `json:"phone,omitempty"`
	Active         *bool  `json:"active,omitempty"` // nil means "leave unchanged"
	Theme          *Theme `json:"theme,omitempty"`
}

// Service exposes institution CRUD over the authenticated client.
type Service struct {
	client  *api.Client
	baseURL string
}

// NewService creates the institutions client. baseURL is the institution API
// root derived from the configured base domain.
func NewService(client *api.Client, baseURL string) (*Service, error) {
	if client == nil {
		return nil, errors.New("[institutions.NewService] api client is required")
	}
	if baseURL == "" {
		return nil, errors.New("[institutions.NewService] base URL is required")
	}
	return &Service{client: client, baseURL: baseURL}, nil
}

func (s *Service) List(ctx context.Context) (api.Result[[]Institution], error) {
	return api.Get[[]Institution](ctx, s.client, s.baseURL+"/institutions")
}

func (s *Service) Get(ctx context.Context, id string) (api.Result[Institution], error) {
	return api.Get[Institution](ctx, s.client, s.baseURL+"/institutions/"+id)
}

func (s *Service) Create(ctx context.Context, inst Institution) (api.Result[Institution], error) {
	if err := inst.Validate(); err != nil {
		return api.Result[Institution]{}, err
	}
	return api.Post[Institution](ctx, s.client, s.baseURL+"/institutions", inst)
}

func (s *Service) Update(ctx context.Context, id string, inst Institution) (api.Result[Institution], error) {
	if err := inst.Validate(); err != nil {
		return api.Result[Institution]{}, err
	}
	return api.Put[Institution](ctx, s.client, s.baseURL+"/institutions/"+id, inst)
}

// SetActive toggles the institution without touching the rest of the record.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (api.Result[Institution], error) {
	body := map[string]bool{"active": active}
	return api.Patch[Institution](ctx, s.client, s.baseURL+"/institutions/"+id, body)
}

func (s *Service) Delete(ctx context.Context, id string) (api.Result[struct{}], error) {
	return api.Delete(ctx, s.client, s.baseURL+"/institutions/"+id)
}
