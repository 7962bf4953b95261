package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"alert-dashboard/internal/logging"
	"alert-dashboard/internal/models"
)

// AlertCreator stores alerts raised by the risk engine.
type AlertCreator interface {
	CreateAlert(ctx context.Context, transactionID string, riskScore float64, data map[string]interface{}) (models.Alert, error)
}

// AlertEvent is a decoded risk-engine message. Data is the whole message.
type AlertEvent struct {
	TransactionID string
	RiskScore     float64
	Data          map[string]interface{}
}

// ParseAlertEvent decodes a message value. transaction_id must be a
// non-empty string and risk_score a number.
func ParseAlertEvent(value []byte) (AlertEvent, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(value, &data); err != nil {
		return AlertEvent{}, fmt.Errorf("unmarshal message: %w", err)
	}
	if data == nil {
		return AlertEvent{}, errors.New("message is not a JSON object")
	}

	txID, _ := data["transaction_id"].(string)
	if strings.TrimSpace(txID) == "" {
		return AlertEvent{}, errors.New("missing transaction_id")
	}
	score, ok := data["risk_score"].(float64)
	if !ok {
		return AlertEvent{}, errors.New("missing or non-numeric risk_score")
	}
	return AlertEvent{TransactionID: txID, RiskScore: score, Data: data}, nil
}

type Consumer struct {
	reader *kafkago.Reader
	svc    AlertCreator
	logger *logging.Logger
}

func NewConsumer(brokers []string, topic, groupID string, svc AlertCreator, logger *logging.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	return &Consumer{reader: r, svc: svc, logger: logger}
}

// Start reads messages until ctx is cancelled or the consumer is closed.
func (s *Consumer) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.logger.Infof("Kafka consumer started: topic=%s", s.reader.Config().Topic)

		for {
			msg, err := s.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					s.logger.Info("Kafka consumer stopped")
					return
				}
				s.logger.Errorf("Read message failed: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
				continue
			}
			s.handle(ctx, msg.Value)
		}
	}()
}

// handle stores one message; malformed messages are logged and dropped.
func (s *Consumer) handle(ctx context.Context, value []byte) {
	event, err := ParseAlertEvent(value)
	if err != nil {
		s.logger.Errorf("Invalid alert message: %v", err)
		return
	}

	alert, err := s.svc.CreateAlert(ctx, event.TransactionID, event.RiskScore, event.Data)
	if err != nil {
		s.logger.Errorf("Failed to store alert for transaction %s: %v", event.TransactionID, err)
		return
	}
	s.logger.Infof("Processed Kafka message: alert=%d transaction=%s", alert.ID, event.TransactionID)
}

func (s *Consumer) Close() error {
	if err := s.reader.Close(); err != nil {
		return fmt.Errorf("close kafka reader: %w", err)
	}
	return nil
}
