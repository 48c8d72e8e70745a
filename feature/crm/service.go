package crm

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"catalog-sync/core/events"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageEvent is the payload published for every newly stored message.
type MessageEvent struct {
	MessageID  uint      `json:"message_id"`
	CustomerID *uint     `json:"customer_id"`
	Phone      string    `json:"phone"`
	WhatsAppID string    `json:"whatsapp_id"`
	ReceivedAt time.Time `json:"received_at"`
}

// Service stores inbound WhatsApp messages.
type Service struct {
	db        *gorm.DB
	matcher   CustomerMatcher
	publisher events.Publisher
	cfg       Config
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a CRM service. A nil publisher disables events.
func NewService(db *gorm.DB, matcher CustomerMatcher, publisher events.Publisher, cfg Config, logger *zap.Logger) *Service {
	if matcher == nil {
		matcher = NewPhoneMatcher(db, cfg.matchDigits())
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:        db,
		matcher:   matcher,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Migrate creates or updates the CRM tables.
func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(&Customer{}, &Message{}); err != nil {
		return fmt.Errorf("failed to migrate crm tables: %w", err)
	}
	return nil
}

// VerifyToken reports whether token matches the configured verify token.
func (s *Service) VerifyToken(token string) bool {
	if s.cfg.VerifyToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.VerifyToken)) == 1
}

// Record stores every inbound message of the payload and returns how many
// were new. Messages already stored under the same WhatsApp id are ignored.
func (s *Service) Record(ctx context.Context, payload WebhookPayload) (int, error) {
	stored := 0
	for _, in := range payload.Inbound(s.now()) {
		msg, created, err := s.store(ctx, in)
		if err != nil {
			return stored, err
		}
		if !created {
			s.logger.Debug("Duplicate message ignored", zap.String("whatsapp_id", in.WhatsAppID))
			continue
		}
		stored++

		event := MessageEvent{
			MessageID:  msg.ID,
			CustomerID: msg.CustomerID,
			Phone:      msg.Phone,
			WhatsAppID: msg.WhatsAppID,
			ReceivedAt: msg.ReceivedAt,
		}
		if err := s.publisher.Publish(context.WithoutCancel(ctx), events.MessageReceived, event); err != nil {
			s.logger.Warn("Failed to publish message event", zap.Uint("message_id", msg.ID), zap.Error(err))
		}
	}
	return stored, nil
}

func (s *Service) store(ctx context.Context, in InboundMessage) (*Message, bool, error) {
	customerID, err := s.matcher.MatchCustomer(ctx, in.From)
	if err != nil {
		return nil, false, err
	}

	msg := &Message{
		CustomerID:  customerID,
		Direction:   DirectionInbound,
		Content:     in.Content,
		ReceivedAt:  in.ReceivedAt,
		WhatsAppID:  in.WhatsAppID,
		Phone:       in.From,
		ProfileName: in.ProfileName,
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "whatsapp_id"}}, DoNothing: true}).
		Create(msg)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to store message %s: %w", in.WhatsAppID, res.Error)
	}

	s.logger.Info("Message stored",
		zap.String("whatsapp_id", in.WhatsAppID),
		zap.Bool("customer_matched", customerID != nil),
		zap.Bool("duplicate", res.RowsAffected == 0),
	)
	return msg, res.RowsAffected > 0, nil
}
