package service

import (
	"context"

	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/pkg/events"
	pktNats "ai-interview-be/pkg/nats"
)

// EventMonitorService tails the lifecycle event stream and writes an audit
// line per event. Other processes publish on the same stream, so the log
// covers more than this instance's own sessions.
type EventMonitorService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewEventMonitorService(sub *pktNats.Subscriber, log logger.ILogger) *EventMonitorService {
	return &EventMonitorService{
		subscriber: sub,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *EventMonitorService) Start() {
	err := s.subscriber.Subscribe("events.>", "interview-audit-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("EventMonitor", "failed to start event subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("EventMonitor", "listening to events.>", nil)
}

func (s *EventMonitorService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	s.logger.Info("EventMonitor", "lifecycle event", map[string]interface{}{
		"type":       event.EventType(),
		"session_id": payload["session_id"],
	})
	return nil
}
