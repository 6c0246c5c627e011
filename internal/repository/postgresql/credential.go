package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type credentialRepositoryImpl struct {
	db *database.DB
}

func NewCredentialRepository(db *database.DB) credential.CredentialRepository {
	return &credentialRepositoryImpl{db: db}
}

const credentialColumns = `id, employee_name, company_email, company_email_password, company_team_password,
	agent_name, laptop_password, created_at, updated_at`

func scanCredential(row pgx.Row) (credential.Credential, error) {
	var c credential.Credential
	err := row.Scan(
		&c.ID, &c.EmployeeName, &c.CompanyEmail, &c.CompanyEmailPassword, &c.CompanyTeamPassword,
		&c.AgentName, &c.LaptopPassword, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// List implements credential.CredentialRepository.
func (r *credentialRepositoryImpl) List(ctx context.Context) ([]credential.Credential, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+credentialColumns+` FROM employee_credentials ORDER BY employee_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query credentials: %w", err)
	}
	defer rows.Close()

	var creds []credential.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credentials: %w", err)
	}
	return creds, nil
}

// GetByID implements credential.CredentialRepository.
func (r *credentialRepositoryImpl) GetByID(ctx context.Context, id string) (credential.Credential, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanCredential(q.QueryRow(ctx, `SELECT `+credentialColumns+` FROM employee_credentials WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credential.Credential{}, credential.ErrCredentialNotFound
		}
		return credential.Credential{}, fmt.Errorf("failed to get credential: %w", err)
	}
	return c, nil
}

// Create implements credential.CredentialRepository.
func (r *credentialRepositoryImpl) Create(ctx context.Context, c credential.Credential) (credential.Credential, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_credentials (employee_name, company_email, company_email_password,
			company_team_password, agent_name, laptop_password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + credentialColumns

	created, err := scanCredential(q.QueryRow(ctx, query,
		c.EmployeeName, c.CompanyEmail, c.CompanyEmailPassword, c.CompanyTeamPassword, c.AgentName, c.LaptopPassword,
	))
	if err != nil {
		return credential.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}
	return created, nil
}

// Update implements credential.CredentialRepository.
func (r *credentialRepositoryImpl) Update(ctx context.Context, c credential.Credential) (credential.Credential, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_credentials
		SET employee_name = $1, company_email = $2, company_email_password = $3,
			company_team_password = $4, agent_name = $5, laptop_password = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING ` + credentialColumns

	updated, err := scanCredential(q.QueryRow(ctx, query,
		c.EmployeeName, c.CompanyEmail, c.CompanyEmailPassword, c.CompanyTeamPassword, c.AgentName, c.LaptopPassword, c.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credential.Credential{}, credential.ErrCredentialNotFound
		}
		return credential.Credential{}, fmt.Errorf("failed to update credential: %w", err)
	}
	return updated, nil
}

// Delete implements credential.CredentialRepository.
func (r *credentialRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employee_credentials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return credential.ErrCredentialNotFound
	}
	return nil
}
