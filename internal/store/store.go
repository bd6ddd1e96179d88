// Package store owns the social graph: users, posts, likes, comments, the
// global chat room, direct-message threads, and live announcements. Every
// mutation of contended state (counters, the liker set, thread identity)
// runs inside a database transaction so concurrent clients cannot observe
// or produce lost updates.
package store

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	apperrors "github.com/pagebook-app/pagebook-backend/pkg/errors"
	"gorm.io/gorm"
)

type Store struct {
	db     *gorm.DB
	broker *Broker
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		broker: NewBroker(),
	}
}

// Broker exposes the event broker for subscription consumers (socket
// bridge, tests).
func (s *Store) Broker() *Broker {
	return s.broker
}

// isUniqueViolation detects a unique-index conflict across the drivers we
// run on (pgx via gorm, lib/pq raw errors, sqlite in tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// wrapDBErr maps gorm errors to the typed taxonomy. Record-not-found is
// usually a benign race with a concurrent delete.
func wrapDBErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(notFoundMsg)
	}
	return apperrors.NewTransientError(err.Error())
}
