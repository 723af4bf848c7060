package ports

import "context"

// SecretStore persists one small secret per (service, account) pair.
// Save fully replaces any existing record for the pair. Delete is a no-op
// when the record does not exist. Read wraps domain.ErrSecretNotFound when
// the record is absent.
type SecretStore interface {
	Save(ctx context.Context, service, account string, secret []byte) error
	Read(ctx context.Context, service, account string) ([]byte, error)
	Delete(ctx context.Context, service, account string) error
}
