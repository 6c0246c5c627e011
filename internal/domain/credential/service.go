package credential

import "context"

type CredentialService interface {
	List(ctx context.Context) ([]CredentialSummary, error)
	Create(ctx context.Context, req CredentialRequest) (CredentialSummary, error)
	Update(ctx context.Context, id string, req CredentialRequest) (CredentialSummary, error)
	Delete(ctx context.Context, id string) error
	Reveal(ctx context.Context, id string, req SecurityCodeRequest) (CredentialDetail, error)
	Export(ctx context.Context, req SecurityCodeRequest) ([]Credential, error)
}
