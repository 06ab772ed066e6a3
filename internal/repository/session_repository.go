package repository

import (
	"context"

	"newswave/internal/domain/entity"
)

// SessionRepository persists the single local session record.
//
// Load never fails: an absent, unreadable or inconsistent record is reported
// as the zero Session.
type SessionRepository interface {
	Save(ctx context.Context, session entity.Session) error
	Load(ctx context.Context) entity.Session
	Clear(ctx context.Context) error
}
