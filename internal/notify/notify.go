// Package notify publishes maintenance events to an MQTT broker.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/query"
)

// EventRecordCreated is sent once per record added through maintenance entry.
const EventRecordCreated = "maintenance.record.created"

// Event is the JSON payload published for a maintenance record.
type Event struct {
	Type         string    `json:"type"`
	RecordID     string    `json:"record_id"`
	VehicleID    string    `json:"vehicle_id"`
	LicensePlate string    `json:"license_plate"`
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Category     string    `json:"category"`
	Date         string    `json:"date"`
	Mileage      int       `json:"mileage"`
	Technician   string    `json:"technician,omitempty"`
	Cost         *float64  `json:"cost,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}

// NewRecordEvent builds the event for a newly created record.
func NewRecordEvent(d query.RecordDetail, now time.Time) Event {
	return Event{
		Type:         EventRecordCreated,
		RecordID:     d.ID,
		VehicleID:    d.VehicleID,
		LicensePlate: d.Vehicle.LicensePlate,
		ItemID:       d.ItemID,
		ItemName:     d.Item.Name,
		Category:     string(d.Item.Category),
		Date:         d.Date.Format("2006-01-02"),
		Mileage:      d.Mileage,
		Technician:   d.Technician,
		Cost:         d.Cost,
		SentAt:       now.UTC(),
	}
}

// Notifier delivers maintenance events.
type Notifier interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// tokenPublisher is the part of mqtt.Client the publisher uses.
type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher publishes events under Topic/<vehicle id>.
type MQTTPublisher struct {
	client tokenPublisher
	topic  string
	qos    byte
}

// MQTTOptions configures the broker connection.
type MQTTOptions struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Timeout  time.Duration
}

var ErrTimeout = errors.New("mqtt operation timed out")

// ConnectMQTT connects to the broker and returns a publisher plus a function that
// disconnects it.
func ConnectMQTT(opts MQTTOptions) (*MQTTPublisher, func(), error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	clientOpts := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.Timeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		})

	client := mqtt.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(opts.Timeout) {
		return nil, nil, fmt.Errorf("connect to %s: %w", opts.Broker, ErrTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", opts.Broker, err)
	}
	log.WithFields(log.Fields{
		"broker": opts.Broker,
		"topic":  opts.Topic,
	}).Info("Connected to MQTT broker")

	disconnect := func() { client.Disconnect(250) }
	return NewMQTTPublisher(client, opts.Topic, opts.QoS), disconnect, nil
}

// NewMQTTPublisher wraps an already connected client.
func NewMQTTPublisher(client tokenPublisher, topic string, qos byte) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic, qos: qos}
}

// Publish sends ev and waits for the broker to acknowledge it or ctx to end.
func (p *MQTTPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	topic := p.topic + "/" + ev.VehicleID
	token := p.client.Publish(topic, p.qos, false, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish to %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", topic, ctx.Err())
	}
}
