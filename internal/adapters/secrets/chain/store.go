package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/alnitaka/zenon-cli/internal/adapters/secrets/file"
	passstore "github.com/alnitaka/zenon-cli/internal/adapters/secrets/pass"
	"github.com/alnitaka/zenon-cli/internal/ports"
)

// Store chains two secret backends: every operation tries the primary
// first and falls back to the secondary, so a token saved while pass(1)
// was unavailable is still found later.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Save(ctx context.Context, service, account string, secret []byte) error {
	err := s.primary.Save(ctx, service, account, secret)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Save(ctx, service, account, secret)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend save failed: %w; fallback backend save failed: %w", err, fallbackErr)
}

func (s *Store) Read(ctx context.Context, service, account string) ([]byte, error) {
	secret, err := s.primary.Read(ctx, service, account)
	if err == nil {
		return secret, nil
	}
	if shouldSkipFallback(err) {
		return nil, err
	}

	fallbackSecret, fallbackErr := s.fallback.Read(ctx, service, account)
	if fallbackErr == nil {
		return fallbackSecret, nil
	}

	return nil, fmt.Errorf("primary backend read failed: %w; fallback backend read failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, service, account string) error {
	err := s.primary.Delete(ctx, service, account)
	if shouldSkipFallback(err) {
		return err
	}

	// Delete from both backends; a stale fallback copy must not resurrect
	// a signed-out session.
	fallbackErr := s.fallback.Delete(ctx, service, account)
	if err == nil && fallbackErr == nil {
		return nil
	}
	if err != nil && fallbackErr != nil {
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
	if err != nil {
		return fmt.Errorf("primary backend delete failed: %w", err)
	}

	return fmt.Errorf("fallback backend delete failed: %w", fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
