package credential

import "context"

type CredentialRepository interface {
	List(ctx context.Context) ([]Credential, error)
	GetByID(ctx context.Context, id string) (Credential, error)
	Create(ctx context.Context, c Credential) (Credential, error)
	Update(ctx context.Context, c Credential) (Credential, error)
	Delete(ctx context.Context, id string) error
}
