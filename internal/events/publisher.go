package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"asset-verification-portal/internal/config"
	"asset-verification-portal/internal/logger"
	"asset-verification-portal/pkg/mqtt"
)

// Event types published on the campaign topic.
const (
	EventCampaignCreated   = "campaign_created"
	EventCampaignLaunched  = "campaign_launched"
	EventCampaignCompleted = "campaign_completed"
	EventRecordSubmitted   = "record_submitted"
	EventRecordReviewed    = "record_reviewed"
	EventRecordsOverdue    = "records_overdue"
)

// Event is the payload published to assets/campaigns/<id>/events.
type Event struct {
	Type       string                 `json:"type"`
	CampaignID uuid.UUID              `json:"campaign_id"`
	Timestamp  time.Time              `json:"timestamp"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// Publisher pushes campaign lifecycle events to an MQTT broker so dashboards
// can follow progress live. With no broker configured every publish is a no-op.
type Publisher struct {
	client *mqtt.Client
	qos    byte
}

func NewPublisher(cfg *config.Config) *Publisher {
	if cfg.MQTT.Broker == "" {
		return &Publisher{}
	}

	clientID := cfg.MQTT.ClientID
	if clientID == "" {
		clientID = "asset-verification-portal"
	}

	client := mqtt.NewClient(&mqtt.Config{
		Broker:               cfg.MQTT.Broker,
		ClientID:             clientID,
		Username:             cfg.MQTT.Username,
		Password:             cfg.MQTT.Password,
		CleanSession:         true,
		KeepAlive:            30,
		ConnectTimeout:       10,
		AutoReconnect:        true,
		MaxReconnectInterval: time.Minute,
	})

	return &Publisher{
		client: client,
		qos:    byte(cfg.MQTT.QoS),
	}
}

// Connect dials the broker. Safe to call on a no-op publisher.
func (p *Publisher) Connect() error {
	if p.client == nil {
		return nil
	}
	return p.client.Connect()
}

func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect()
	}
}

// Publish sends one campaign event. Failures are logged, never propagated:
// event delivery must not fail the request that triggered it.
func (p *Publisher) Publish(campaignID uuid.UUID, eventType string, data map[string]interface{}) {
	if p.client == nil || !p.client.IsConnected() {
		return
	}

	payload, err := json.Marshal(Event{
		Type:       eventType,
		CampaignID: campaignID,
		Timestamp:  time.Now(),
		Data:       data,
	})
	if err != nil {
		logger.Error("Failed to encode campaign event", zap.Error(err))
		return
	}

	topic := fmt.Sprintf("assets/campaigns/%s/events", campaignID)
	if err := p.client.Publish(topic, p.qos, false, payload); err != nil {
		logger.Error("Failed to publish campaign event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
