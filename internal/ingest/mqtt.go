package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/models"
	"github.com/addissalvage/elv-tracking/internal/rules"
	"github.com/addissalvage/elv-tracking/internal/validate"
)

// locationTopic matches position messages from telematics units. The middle
// segment is the vehicle id.
const locationTopic = "elv/+/location"

// Bridge subscribes to telematics position messages and records each one as
// a location_update event through the same validation and store path as the
// HTTP event endpoint.
type Bridge struct {
	store  db.Store
	engine *rules.Engine
	client mqtt.Client
}

// NewBridge creates an MQTT bridge for the given broker URL.
func NewBridge(broker string, store db.Store, engine *rules.Engine) *Bridge {
	b := &Bridge{store: store, engine: engine}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("elv-tracking-ingest").
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	opts.OnConnect = func(c mqtt.Client) {
		if token := c.Subscribe(locationTopic, 1, b.handleMessage); token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).Error("failed to subscribe to location topic")
		}
	}
	b.client = mqtt.NewClient(opts)
	return b
}

// Start connects to the broker and begins consuming position messages.
func (b *Bridge) Start() error {
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect error: %w", token.Error())
	}
	return nil
}

// Stop disconnects from the broker.
func (b *Bridge) Stop() {
	b.client.Disconnect(250)
}

func (b *Bridge) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	parts := strings.Split(msg.Topic(), "/")
	if len(parts) != 3 {
		log.WithField("topic", msg.Topic()).Warn("unexpected topic shape, dropping message")
		return
	}
	id, err := b.Ingest(context.Background(), parts[1], msg.Payload())
	if err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("failed to ingest position message")
		return
	}
	log.WithFields(log.Fields{
		"vehicle_id": parts[1],
		"event_id":   id,
	}).Debug("position message recorded")
}

// Ingest records one position payload as a location_update event for the
// given vehicle and returns the stored event id.
func (b *Bridge) Ingest(ctx context.Context, vehicleID string, payload []byte) (string, error) {
	var loc models.Location
	if err := json.Unmarshal(payload, &loc); err != nil {
		return "", fmt.Errorf("invalid position payload: %w", err)
	}
	data := map[string]interface{}{
		"vehicle_id": vehicleID,
		"event_type": string(models.EventLocationUpdate),
		"location":   map[string]interface{}{"lat": loc.Lat, "lon": loc.Lon},
	}
	doc, err := validate.Event(data, time.Now().UTC())
	if err != nil {
		return "", err
	}
	id, err := b.store.Insert(ctx, db.EventCollection, doc)
	if err != nil {
		return "", err
	}
	if err := b.engine.Apply(ctx, doc); err != nil {
		return "", err
	}
	return id, nil
}
