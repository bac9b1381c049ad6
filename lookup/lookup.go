// Package lookup is the client for the external registry lookups the backend
// proxies: the national identity registry (person by document id) and the
// ministry's school registry (school by modular code).
package lookup

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/pkg/errors"

	"github.com/schoolctl/schoolctl/api"
)

const defaultPersonTimeout = 10 * time.Second

var (
	documentIDPattern  = regexp.MustCompile(`^[0-9]{8}$`)
	modularCodePattern = regexp.MustCompile(`^[0-9]{7}$`)
)

// Person is the identity registry's view of a citizen.
type Person struct {
	DocumentID   string `json:"documentId"`
	FirstName    string `json:"firstName"`
	PaternalName string `json:"paternalName"`
	MaternalName string `json:"maternalName"`
}

// FullName joins the registry name parts for display.
func (p Person) FullName() string {
	return fmt.Sprintf("%s %s %s", p.FirstName, p.PaternalName, p.MaternalName)
}

// School is the ministry registry's view of an institution.
type School struct {
	ModularCode    string `json:"modularCode"`
	Name           string `json:"name"`
	Level          string `json:"level"`
	ManagementUnit string `json:"managementUnit"`
	District       string `json:"district"`
}

// Service exposes the registry lookups.
type Service struct {
	client        *api.Client
	baseURL       string
	personTimeout time.Duration
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithPersonTimeout overrides the wall-clock deadline on person lookups.
func WithPersonTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.personTimeout = d
	}
}

// NewService creates the lookup client.
func NewService(client *api.Client, baseURL string, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[lookup.NewService] api client is required")
	}
	if baseURL == "" {
		return nil, errors.New("[lookup.NewService] base URL is required")
	}

	s := &Service{
		client:        client,
		baseURL:       baseURL,
		personTimeout: defaultPersonTimeout,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// FindPerson looks up a citizen by document id. The upstream registry is
// slow and occasionally unresponsive, so this call carries its own fixed
// deadline; hitting it surfaces as a plain failure, not a hang.
func (s *Service) FindPerson(ctx context.Context, documentID string) (api.Result[Person], error) {
	if !documentIDPattern.MatchString(documentID) {
		return api.Result[Person]{}, fmt.Errorf("document id must be exactly 8 digits")
	}

	ctx, cancel := context.WithTimeout(ctx, s.personTimeout)
	defer cancel()

	return api.Get[Person](ctx, s.client, s.baseURL+"/persons/"+documentID)
}

// FindSchool looks up a school by ministry modular code.
func (s *Service) FindSchool(ctx context.Context, modularCode string) (api.Result[School], error) {
	if !modularCodePattern.MatchString(modularCode) {
		return api.Result[School]{}, fmt.Errorf("modular code must be exactly 7 digits")
	}
	return api.Get[School](ctx, s.client, s.baseURL+"/schools/"+modularCode)
}
