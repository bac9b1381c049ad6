// Package headquarters is the client for campus records. A headquarter is a
// physical campus of an institution; every record is scoped by institution.
package headquarters

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/schoolctl/schoolctl/api"
)

// Headquarter mirrors the backend schema.
type Headquarter struct {
	ID            string `json:"id,omitempty"`
	InstitutionID string `json:"institutionId"`
	Name          string `json:"name"`
	Code          string `json:"code,omitempty"`
	Address       string `json:"address,omitempty"`
	District      string `json:"district,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Main          bool   `json:"main,omitempty"` // the institution's principal campus
	Active        *bool  `json:"active,omitempty"` // nil means "leave unchanged"
}

// Validate checks a headquarter before submission.
func (h Headquarter) Validate() error {
	if strings.TrimSpace(h.InstitutionID) == "" {
		return fmt.Errorf("institution id is required")
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Service exposes headquarter CRUD over the authenticated client.
type Service struct {
	client  *api.Client
	baseURL string
}

// NewService creates the headquarters client.
func NewService(client *api.Client, baseURL string) (*Service, error) {
	if client == nil {
		return nil, errors.New("[headquarters.NewService] api client is required")
	}
	if baseURL == "" {
		return nil, errors.New("[headquarters.NewService] base URL is required")
	}
	return &Service{client: client, baseURL: baseURL}, nil
}

// ListByInstitution returns every campus of one institution.
func (s *Service) ListByInstitution(ctx context.Context, institutionID string) (api.Result[[]Headquarter], error) {
	url := s.baseURL + "/institutions/" + institutionID + "/headquarters"
	return api.Get[[]Headquarter](ctx, s.client, url)
}

func (s *Service) Get(ctx context.Context, id string) (api.Result[Headquarter], error) {
	return api.Get[Headquarter](ctx, s.client, s.baseURL+"/headquarters/"+id)
}

func (s *Service) Create(ctx context.Context, hq Headquarter) (api.Result[Headquarter], error) {
	if err := hq.Validate(); err != nil {
		return api.Result[Headquarter]{}, err
	}
	return api.Post[Headquarter](ctx, s.client, s.baseURL+"/headquarters", hq)
}

func (s *Service) Update(ctx context.Context, id string, hq Headquarter) (api.Result[Headquarter], error) {
	if err := hq.Validate(); err != nil {
		return api.Result[Headquarter]{}, err
	}
	return api.Put[Headquarter](ctx, s.client, s.baseURL+"/headquarters/"+id, hq)
}

func (s *Service) Delete(ctx context.Context, id string) (api.Result[struct{}], error) {
	return api.Delete(ctx, s.client, s.baseURL+"/headquarters/"+id)
}
