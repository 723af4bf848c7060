package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/alnitaka/zenon-cli/internal/ports"
)

const (
	storeDirMode   = 0o700
	secretFileMode = 0o600
)

// Store keeps one secret per (service, account) pair as a file under root.
// It is the fallback backend when no platform secret facility is available.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Save(ctx context.Context, service, account string, secret []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(service, account)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create secret directory: %w", err)
	}

	if err := os.WriteFile(path, secret, secretFileMode); err != nil {
		return fmt.Errorf("write secret %s/%s: %w", service, account, err)
	}

	return nil
}

func (s *Store) Read(ctx context.Context, service, account string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.pathFor(service, account)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("secret %s/%s: %w", service, account, domain.ErrSecretNotFound)
		}
		return nil, fmt.Errorf("read secret %s/%s: %w", service, account, err)
	}

	return data, nil
}

func (s *Store) Delete(ctx context.Context, service, account string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(service, account)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete secret %s/%s: %w", service, account, err)
	}

	return nil
}

func (s *Store) pathFor(service, account string) (string, error) {
	for _, part := range []string{service, account} {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			return "", errors.New("secret key component is empty")
		}
		if trimmed == "." || trimmed == ".." || strings.ContainsAny(trimmed, `/\`) {
			return "", fmt.Errorf("invalid secret key component %q", part)
		}
	}

	return filepath.Join(s.root, service, account), nil
}
