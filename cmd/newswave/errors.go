package main

import (
	"errors"

	"newswave/internal/domain/entity"
	"newswave/internal/infra/newsapi"
	"newswave/internal/usecase/article"
	"newswave/internal/usecase/subscription"
)

// actionError is what the user sees when a command fails.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string {
	return e.action + " failed: " + userMessage(e.err)
}

func (e *actionError) Unwrap() error {
	return e.err
}

func failed(action string, err error) error {
	if err == nil {
		return nil
	}
	return &actionError{action: action, err: err}
}

func userMessage(err error) string {
	var apiErr *newsapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.DetailMessage()
	}
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	switch {
	case errors.Is(err, subscription.ErrSubscriberRequired), errors.Is(err, article.ErrSubscriberRequired):
		return "log in as a subscriber first"
	case errors.Is(err, article.ErrPublisherRequired):
		return "log in as a publisher first"
	}
	return err.Error()
}
