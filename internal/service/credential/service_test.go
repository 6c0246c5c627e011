package credential

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialRepo struct {
	items map[string]credential.Credential
	seq   int
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{items: map[string]credential.Credential{}}
}

func (f *fakeCredentialRepo) List(_ context.Context) ([]credential.Credential, error) {
	var out []credential.Credential
	for i := 1; i <= f.seq; i++ {
		if c, ok := f.items[fmt.Sprintf("cred-%d", i)]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCredentialRepo) GetByID(_ context.Context, id string) (credential.Credential, error) {
	c, ok := f.items[id]
	if !ok {
		return credential.Credential{}, credential.ErrCredentialNotFound
	}
	return c, nil
}

func (f *fakeCredentialRepo) Create(_ context.Context, c credential.Credential) (credential.Credential, error) {
	f.seq++
	c.ID = fmt.Sprintf("cred-%d", f.seq)
	c.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c.UpdatedAt = c.CreatedAt
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCredentialRepo) Update(_ context.Context, c credential.Credential) (credential.Credential, error) {
	if _, ok := f.items[c.ID]; !ok {
		return credential.Credential{}, credential.ErrCredentialNotFound
	}
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeCredentialRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return credential.ErrCredentialNotFound
	}
	delete(f.items, id)
	return nil
}

func newTestCredentialService(t *testing.T) (credential.CredentialService, *fakeCredentialRepo) {
	t.Helper()
	box, err := vault.New(strings.Repeat("0f", 32))
	require.NoError(t, err)
	repo := newFakeCredentialRepo()
	return NewCredentialService(repo, box, "4321"), repo
}

func validRequest() credential.CredentialRequest {
	return credential.CredentialRequest{
		EmployeeName:         "Asha",
		CompanyEmail:         "asha@company.test",
		CompanyEmailPassword: "mail-pass",
		CompanyTeamPassword:  "team-pass",
		AgentName:            "AGENT-7",
		LaptopPassword:       "laptop-pass",
	}
}

func TestCreate_SealsSecrets(t *testing.T) {
	svc, repo := newTestCredentialService(t)

	summary, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "Asha", summary.EmployeeName)

	stored := repo.items[summary.ID]
	assert.NotEqual(t, "mail-pass", stored.CompanyEmailPassword)
	assert.NotEqual(t, "team-pass", stored.CompanyTeamPassword)
	assert.NotEqual(t, "laptop-pass", stored.LaptopPassword)
	assert.Equal(t, "asha@company.test", stored.CompanyEmail)
}

func TestCreate_RequiresEveryField(t *testing.T) {
	svc, repo := newTestCredentialService(t)

	req := validRequest()
	req.LaptopPassword = " "
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
	assert.Empty(t, repo.items)
}

func TestReveal(t *testing.T) {
	svc, _ := newTestCredentialService(t)
	summary, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Reveal(context.Background(), summary.ID, credential.SecurityCodeRequest{SecurityCode: "0000"})
	assert.ErrorIs(t, err, credential.ErrInvalidSecurityCode)

	detail, err := svc.Reveal(context.Background(), summary.ID, credential.SecurityCodeRequest{SecurityCode: "4321"})
	require.NoError(t, err)
	assert.Equal(t, "mail-pass", detail.CompanyEmailPassword)
	assert.Equal(t, "team-pass", detail.CompanyTeamPassword)
	assert.Equal(t, "laptop-pass", detail.LaptopPassword)

	_, err = svc.Reveal(context.Background(), "cred-99", credential.SecurityCodeRequest{SecurityCode: "4321"})
	assert.ErrorIs(t, err, credential.ErrCredentialNotFound)
}

func TestUpdateAndExport(t *testing.T) {
	svc, _ := newTestCredentialService(t)
	first, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.EmployeeName = "Bilal"
	second.CompanyEmail = "bilal@company.test"
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	changed := validRequest()
	changed.LaptopPassword = "new-laptop-pass"
	_, err = svc.Update(context.Background(), first.ID, changed)
	require.NoError(t, err)

	_, err = svc.Export(context.Background(), credential.SecurityCodeRequest{SecurityCode: "wrong"})
	assert.ErrorIs(t, err, credential.ErrInvalidSecurityCode)

	all, err := svc.Export(context.Background(), credential.SecurityCodeRequest{SecurityCode: "4321"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new-laptop-pass", all[0].LaptopPassword)
	assert.Equal(t, "Bilal", all[1].EmployeeName)

	require.NoError(t, svc.Delete(context.Background(), first.ID))
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
