package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"newswave/internal/domain/entity"
	"newswave/internal/observability/metrics"
	"newswave/internal/repository"
)

// AccountCreator creates remote accounts.
type AccountCreator interface {
	CreatePublisher(ctx context.Context, name, description string) (entity.Publisher, error)
	CreateSubscriber(ctx context.Context, name string) (entity.Subscriber, error)
}

// DefaultPublisherDescription is the description sent when a publisher
// account is created at login.
func DefaultPublisherDescription(name string) string {
	return fmt.Sprintf("Articles and updates from %s.", name)
}

// Controller owns the process's single session. It never contacts the
// remote service to validate a stored session; identifiers are trusted until
// logout.
type Controller struct {
	accounts AccountCreator
	store    repository.SessionRepository
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	session entity.Session
	// generation changes on every Login and Logout. A login whose
	// generation is stale when the remote call returns is discarded.
	generation uint64
}

// NewController creates a controller in the Unauthenticated state. Call
// Hydrate to restore a persisted session.
func NewController(accounts AccountCreator, store repository.SessionRepository, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{accounts: accounts, store: store, logger: logger}
}

// Hydrate restores the persisted session, if any, and returns it.
func (c *Controller) Hydrate(ctx context.Context) entity.Session {
	s := c.store.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !s.Valid() {
		c.state, c.session = Unauthenticated, entity.Session{}
		return entity.Session{}
	}

	c.state, c.session = Authenticated, s
	metrics.RecordSessionEvent(metrics.EventHydrated)
	c.logger.DebugContext(ctx, "session restored",
		slog.String("role", s.Role.String()),
		slog.Int64("user_id", s.UserID))
	return s
}

// Login creates a remote account for name with the given role and persists
// the resulting session. On any failure the controller ends Unauthenticated
// with nothing persisted. Logging in while authenticated replaces the
// current session. A Logout during the remote call wins: the result is
// dropped and ErrLoginAborted returned.
func (c *Controller) Login(ctx context.Context, role entity.Role, name string) (entity.Session, error) {
	name = strings.TrimSpace(name)
	if err := entity.ValidateName(name); err != nil {
		return entity.Session{}, err
	}
	if !role.Valid() {
		return entity.Session{}, &entity.ValidationError{Field: "role", Message: "must be publisher or subscriber"}
	}

	c.mu.Lock()
	if c.state == Authenticating {
		c.mu.Unlock()
		return entity.Session{}, ErrLoginInProgress
	}
	if c.state == Authenticated {
		c.clearStore(ctx)
	}
	c.generation++
	gen := c.generation
	c.state, c.session = Authenticating, entity.Session{}
	c.mu.Unlock()

	userID, err := c.createAccount(ctx, role, name)
	if err != nil {
		c.fail(ctx, gen, role, err)
		return entity.Session{}, err
	}

	session, err := entity.NewSession(role, userID, name)
	if err != nil {
		c.fail(ctx, gen, role, err)
		return entity.Session{}, err
	}

	// Logout clears the store under the same lock.
	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		metrics.RecordSessionEvent(metrics.EventLoginFailure)
		c.logger.InfoContext(ctx, "login discarded after logout",
			slog.String("role", role.String()),
			slog.Int64("user_id", userID))
		return entity.Session{}, ErrLoginAborted
	}
	if err := c.store.Save(ctx, session); err != nil {
		c.clearStore(ctx)
		c.state, c.session = Unauthenticated, entity.Session{}
		c.mu.Unlock()
		err = fmt.Errorf("persist session: %w", err)
		c.recordFailure(ctx, role, err)
		return entity.Session{}, err
	}
	c.state, c.session = Authenticated, session
	c.mu.Unlock()

	metrics.RecordSessionEvent(metrics.EventLoginSuccess)
	c.logger.InfoContext(ctx, "logged in",
		slog.String("role", role.String()),
		slog.Int64("user_id", userID))
	return session, nil
}

func (c *Controller) createAccount(ctx context.Context, role entity.Role, name string) (int64, error) {
	switch role {
	case entity.RolePublisher:
		p, err := c.accounts.CreatePublisher(ctx, name, DefaultPublisherDescription(name))
		if err != nil {
			return 0, fmt.Errorf("create publisher account: %w", err)
		}
		return p.ID, nil
	case entity.RoleSubscriber:
		s, err := c.accounts.CreateSubscriber(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("create subscriber account: %w", err)
		}
		return s.ID, nil
	default:
		return 0, &entity.ValidationError{Field: "role", Message: "must be publisher or subscriber"}
	}
}

// fail resets the state unless a Logout or a newer Login has taken over.
func (c *Controller) fail(ctx context.Context, gen uint64, role entity.Role, err error) {
	c.mu.Lock()
	if c.generation == gen {
		c.state, c.session = Unauthenticated, entity.Session{}
	}
	c.mu.Unlock()
	c.recordFailure(ctx, role, err)
}

func (c *Controller) recordFailure(ctx context.Context, role entity.Role, err error) {
	metrics.RecordSessionEvent(metrics.EventLoginFailure)
	c.logger.WarnContext(ctx, "login failed",
		slog.String("role", role.String()),
		slog.Any("error", err))
}

// Logout clears the persisted session and returns to Unauthenticated. It
// always succeeds locally; a storage failure is only logged. A login still
// waiting for the remote service is discarded.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	c.state, c.session = Unauthenticated, entity.Session{}
	c.clearStore(ctx)
	c.mu.Unlock()

	metrics.RecordSessionEvent(metrics.EventLogout)
}

func (c *Controller) clearStore(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.WarnContext(ctx, "failed to clear stored session", slog.Any("error", err))
	}
}

// Session returns a snapshot of the current session; the zero value when
// none is active.
func (c *Controller) Session() entity.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
