package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/alnitaka/zenon-cli/internal/domain"
	"github.com/alnitaka/zenon-cli/internal/ports"
)

// CredentialAccount is the fixed account name of the persisted session
// token in the secret store.
const CredentialAccount = "authToken"

// SessionService owns the session lifecycle: restoring a persisted token
// at startup, logging in or registering, and signing out. It is the single
// writer of the published session state and the only place where the API
// error taxonomy is translated into user-facing messages.
type SessionService struct {
	gateway ports.AuthGateway
	store   ports.SecretStore
	clock   ports.Clock
	logger  *slog.Logger
	service string

	mu          sync.RWMutex
	session     domain.Session
	subscribers map[int]chan domain.Session
	nextSubID   int
}

func NewSessionService(gateway ports.AuthGateway, store ports.SecretStore, service string, clock ports.Clock, logger *slog.Logger) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionService{
		gateway:     gateway,
		store:       store,
		clock:       clock,
		logger:      logger,
		service:     service,
		subscribers: map[int]chan domain.Session{},
	}
}

// Restore loads a previously persisted token. Any readable token yields an
// authenticated session with no email (a bare token does not carry one);
// absence and read failures both leave the session logged out.
func (s *SessionService) Restore(ctx context.Context) {
	secret, err := s.store.Read(ctx, s.service, CredentialAccount)
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			s.logger.Warn("read persisted session token", "err", err)
		}
		return
	}

	tok := string(secret)
	if tok == "" || !utf8.ValidString(tok) {
		return
	}

	s.gateway.SetToken(tok)
	s.publish(domain.Session{
		Authenticated:   true,
		Token:           tok,
		AuthenticatedAt: s.clock.Now(),
	})
}

// Login authenticates against the API. On success the token is persisted
// (best-effort) and the session becomes authenticated; on failure the
// session is left untouched and the returned error carries the user-facing
// message for the failure.
func (s *SessionService) Login(ctx context.Context, email, password string) error {
	creds, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return errors.New(userMessage(err))
	}

	s.persistToken(ctx, creds.Token)
	s.publish(domain.Session{
		Authenticated:   true,
		Token:           creds.Token,
		Email:           email,
		AuthenticatedAt: s.clock.Now(),
	})

	return nil
}

// Register creates an account and starts a session with the returned
// token, with the same success and failure handling as Login.
func (s *SessionService) Register(ctx context.Context, email, password, firstName, lastName string) error {
	creds, err := s.gateway.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		return errors.New(userMessage(err))
	}

	s.persistToken(ctx, creds.Token)
	s.publish(domain.Session{
		Authenticated:   true,
		Token:           creds.Token,
		Email:           email,
		AuthenticatedAt: s.clock.Now(),
	})

	return nil
}

// SignOut tears the session down: persisted token removed, gateway token
// cleared, state back to logged out. Cleanup is best-effort and the
// operation never fails observably; it is safe to call repeatedly.
func (s *SessionService) SignOut(ctx context.Context) {
	if err := s.store.Delete(ctx, s.service, CredentialAccount); err != nil {
		s.logger.Warn("delete persisted session token", "err", err)
	}

	s.gateway.ClearToken()
	s.publish(domain.Session{})
}

// Current returns a snapshot of the published session state.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registers an observer of session transitions. The returned
// cancel function releases the subscription and closes the channel. A slow
// subscriber only ever sees the latest state; intermediate updates may be
// dropped.
func (s *SessionService) Subscribe() (<-chan domain.Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan domain.Session, 1)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}

	return ch, cancel
}

func (s *SessionService) persistToken(ctx context.Context, tok string) {
	if err := s.store.Save(ctx, s.service, CredentialAccount, []byte(tok)); err != nil {
		// Persistence is best-effort; the in-memory session stays valid.
		s.logger.Warn("persist session token", "err", err)
	}
}

// publish installs the new session state and notifies subscribers.
// Concurrent logins race here with last-writer-wins semantics.
func (s *SessionService) publish(next domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = next
	for _, ch := range s.subscribers {
		// Replace a pending update instead of blocking; only publish
		// sends on these channels, so the drain cannot race another
		// sender.
		select {
		case ch <- next:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}

func userMessage(err error) string {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Sprintf("unknown error: %v", err)
	}

	switch apiErr.Kind {
	case domain.APIErrorServer:
		return fmt.Sprintf("server error: code %d", apiErr.Status)
	case domain.APIErrorDecoding:
		return "could not decode server response"
	case domain.APIErrorInvalidResponse:
		return "invalid server response"
	case domain.APIErrorInvalidURL:
		return "invalid URL"
	default:
		if apiErr.Err != nil {
			return fmt.Sprintf("unknown error: %v", apiErr.Err)
		}
		return "unknown error"
	}
}
