package service

import (
	"errors"
	"time"

	"github.com/aryan0dhankhar/workforce/internal/domain"
	"github.com/aryan0dhankhar/workforce/internal/events"
	"github.com/aryan0dhankhar/workforce/internal/observability/metrics"
)

// Publisher receives change notifications after successful mutations
type Publisher interface {
	Publish(e events.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) {}

// resultOf classifies err into the operation metric label
func resultOf(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "conflict"
	case errors.Is(err, domain.ErrEmployeeNotFound), errors.Is(err, domain.ErrTaskNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func observe(op string, start time.Time, err error) {
	metrics.ObserveOperation(op, resultOf(err), time.Since(start))
}
