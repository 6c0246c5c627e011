package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewCredentialRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, credential.Credential{
		EmployeeName:         "Asha",
		CompanyEmail:         "asha@company.test",
		CompanyEmailPassword: "sb1:a",
		CompanyTeamPassword:  "sb1:b",
		AgentName:            "AGENT-7",
		LaptopPassword:       "sb1:c",
	})
	require.NoError(t, err)

	created.AgentName = "AGENT-8"
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "AGENT-8", updated.AgentName)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, credential.ErrCredentialNotFound)

	created.ID = "00000000-0000-0000-0000-000000000000"
	_, err = repo.Update(ctx, created)
	assert.ErrorIs(t, err, credential.ErrCredentialNotFound)
}
