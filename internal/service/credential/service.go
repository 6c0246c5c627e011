package credential

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
)

// Sealer encrypts and decrypts single secret fields.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

type CredentialServiceImpl struct {
	credentialRepo credential.CredentialRepository
	sealer         Sealer
	securityCode   [sha256.Size]byte
}

func NewCredentialService(credentialRepo credential.CredentialRepository, sealer Sealer, securityCode string) credential.CredentialService {
	return &CredentialServiceImpl{
		credentialRepo: credentialRepo,
		sealer:         sealer,
		securityCode:   sha256.Sum256([]byte(securityCode)),
	}
}

func (s *CredentialServiceImpl) checkSecurityCode(req credential.SecurityCodeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	given := sha256.Sum256([]byte(req.SecurityCode))
	if subtle.ConstantTimeCompare(given[:], s.securityCode[:]) != 1 {
		return credential.ErrInvalidSecurityCode
	}
	return nil
}

func mapCredentialToSummary(c credential.Credential) credential.CredentialSummary {
	return credential.CredentialSummary{
		ID:           c.ID,
		EmployeeName: c.EmployeeName,
		CompanyEmail: c.CompanyEmail,
		AgentName:    c.AgentName,
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}

// seal returns a copy of c with every password field encrypted.
func (s *CredentialServiceImpl) seal(c credential.Credential) (credential.Credential, error) {
	for _, field := range []*string{&c.CompanyEmailPassword, &c.CompanyTeamPassword, &c.LaptopPassword} {
		sealed, err := s.sealer.Seal(*field)
		if err != nil {
			return credential.Credential{}, fmt.Errorf("%w: %v", credential.ErrSealFailed, err)
		}
		*field = sealed
	}
	return c, nil
}

func (s *CredentialServiceImpl) open(c credential.Credential) (credential.Credential, error) {
	for _, field := range []*string{&c.CompanyEmailPassword, &c.CompanyTeamPassword, &c.LaptopPassword} {
		plain, err := s.sealer.Open(*field)
		if err != nil {
			slog.Error("credential open error", "credential_id", c.ID, "error", err)
			return credential.Credential{}, fmt.Errorf("%w: %v", credential.ErrOpenFailed, err)
		}
		*field = plain
	}
	return c, nil
}

func fromRequest(req credential.CredentialRequest) credential.Credential {
	return credential.Credential{
		EmployeeName:         strings.TrimSpace(req.EmployeeName),
		CompanyEmail:         strings.TrimSpace(req.CompanyEmail),
		CompanyEmailPassword: req.CompanyEmailPassword,
		CompanyTeamPassword:  req.CompanyTeamPassword,
		AgentName:            strings.TrimSpace(req.AgentName),
		LaptopPassword:       req.LaptopPassword,
	}
}

// List implements credential.CredentialService.
func (s *CredentialServiceImpl) List(ctx context.Context) ([]credential.CredentialSummary, error) {
	creds, err := s.credentialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	summaries := make([]credential.CredentialSummary, 0, len(creds))
	for _, c := range creds {
		summaries = append(summaries, mapCredentialToSummary(c))
	}
	return summaries, nil
}

// Create implements credential.CredentialService.
func (s *CredentialServiceImpl) Create(ctx context.Context, req credential.CredentialRequest) (credential.CredentialSummary, error) {
	if err := req.Validate(); err != nil {
		return credential.CredentialSummary{}, err
	}

	sealed, err := s.seal(fromRequest(req))
	if err != nil {
		return credential.CredentialSummary{}, err
	}

	created, err := s.credentialRepo.Create(ctx, sealed)
	if err != nil {
		return credential.CredentialSummary{}, err
	}
	return mapCredentialToSummary(created), nil
}

// Update implements credential.CredentialService.
func (s *CredentialServiceImpl) Update(ctx context.Context, id string, req credential.CredentialRequest) (credential.CredentialSummary, error) {
	if err := req.Validate(); err != nil {
		return credential.CredentialSummary{}, err
	}

	sealed, err := s.seal(fromRequest(req))
	if err != nil {
		return credential.CredentialSummary{}, err
	}
	sealed.ID = id

	updated, err := s.credentialRepo.Update(ctx, sealed)
	if err != nil {
		return credential.CredentialSummary{}, err
	}
	return mapCredentialToSummary(updated), nil
}

// Delete implements credential.CredentialService.
func (s *CredentialServiceImpl) Delete(ctx context.Context, id string) error {
	return s.credentialRepo.Delete(ctx, id)
}

// Reveal implements credential.CredentialService.
func (s *CredentialServiceImpl) Reveal(ctx context.Context, id string, req credential.SecurityCodeRequest) (credential.CredentialDetail, error) {
	if err := s.checkSecurityCode(req); err != nil {
		return credential.CredentialDetail{}, err
	}

	stored, err := s.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return credential.CredentialDetail{}, err
	}

	c, err := s.open(stored)
	if err != nil {
		return credential.CredentialDetail{}, err
	}

	slog.Info("Credential revealed", "credential_id", c.ID)
	return credential.CredentialDetail{
		ID:                   c.ID,
		EmployeeName:         c.EmployeeName,
		CompanyEmail:         c.CompanyEmail,
		CompanyEmailPassword: c.CompanyEmailPassword,
		CompanyTeamPassword:  c.CompanyTeamPassword,
		AgentName:            c.AgentName,
		LaptopPassword:       c.LaptopPassword,
	}, nil
}

// Export implements credential.CredentialService. Every secret is opened.
func (s *CredentialServiceImpl) Export(ctx context.Context, req credential.SecurityCodeRequest) ([]credential.Credential, error) {
	if err := s.checkSecurityCode(req); err != nil {
		return nil, err
	}

	stored, err := s.credentialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	opened := make([]credential.Credential, 0, len(stored))
	for _, c := range stored {
		plain, err := s.open(c)
		if err != nil {
			return nil, err
		}
		opened = append(opened, plain)
	}

	slog.Info("Credentials exported", "count", len(opened))
	return opened, nil
}
