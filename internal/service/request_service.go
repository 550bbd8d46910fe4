package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/tutor-booking/internal/form"
	"github.com/iliyamo/tutor-booking/internal/model"
	"github.com/iliyamo/tutor-booking/internal/queue"
)

// RequestStore persists tutor requests.
type RequestStore interface {
	Create(ctx context.Context, r *model.Request) error
}

// RequestService stores "find me a tutor" requests for manual follow-up.
type RequestService struct {
	requests  RequestStore
	publisher queue.Publisher
	log       *zap.Logger
}

// NewRequestService wires a RequestService.
func NewRequestService(requests RequestStore, publisher queue.Publisher, log *zap.Logger) *RequestService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &RequestService{requests: requests, publisher: publisher, log: log}
}

// Submit stores a validated request verbatim.
func (s *RequestService) Submit(ctx context.Context, in form.Request) (*model.Request, error) {
	r := model.Request{Name: in.Name, Phone: in.Phone, Goal: in.Goal, WeekTime: in.WeekTime}
	if err := s.requests.Create(ctx, &r); err != nil {
		return nil, err
	}
	s.log.Info("request created", zap.Uint64("request_id", r.ID), zap.String("goal", r.Goal))

	ev := queue.NewRequestEvent(queue.RequestCreated{
		RequestID:   r.ID,
		Goal:        r.Goal,
		WeekTime:    r.WeekTime,
		ClientName:  r.Name,
		ClientPhone: r.Phone,
	})
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("request event not published", zap.Uint64("request_id", r.ID), zap.Error(err))
	}
	return &r, nil
}
