package service

import (
	"context"
	"encoding/json"

	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/mailer"
	"ai-interview-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the session-ended topic: each message is archived
// and, when SMTP is configured, a summary report is mailed. Archival
// failures Nack for redelivery; everything else Acks.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	archiveRepo  contract.ArchiveRepository
	emailService mailer.IEmailService
	reportEmail  string
	log          logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	archiveRepo contract.ArchiveRepository,
	emailService mailer.IEmailService,
	reportEmail string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		archiveRepo:  archiveRepo,
		emailService: emailService,
		reportEmail:  reportEmail,
		log:          log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SessionEndedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("Consumer", "failed to unmarshal session ended message", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.log.Info("Consumer", "archiving finished session", map[string]interface{}{"session_id": payload.SessionId})

	if err := cs.archiveRepo.Save(ctx, &payload); err != nil {
		cs.log.Error("Consumer", "failed to archive session", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	if cs.emailService != nil && cs.reportEmail != "" {
		if err := cs.emailService.SendSummaryReport(cs.reportEmail, payload.SessionId.String(), &payload.Summary); err != nil {
			// The archive already succeeded; a lost email is not worth a redelivery loop.
			cs.log.Warn("Consumer", "failed to send summary report", map[string]interface{}{
				"session_id": payload.SessionId,
				"error":      err.Error(),
			})
		}
	}

	msg.Ack()
}
