package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/query"
)

// fakeToken is an mqtt.Token that is already complete.
type fakeToken struct {
	err  error
	done chan struct{}
}

func newFakeToken(err error, complete bool) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                       { <-t.done; return true }
func (t *fakeToken) WaitTimeout(d time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}            { return t.done }
func (t *fakeToken) Error() error                     { return t.err }

// MockClient is a mock implementation of the MQTT publish call
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	args := m.Called(topic, qos, retained, payload)
	return args.Get(0).(mqtt.Token)
}

func sampleDetail() query.RecordDetail {
	cost := 1800.0
	return query.RecordDetail{
		MaintenanceRecord: models.MaintenanceRecord{
			ID:         "r1",
			VehicleID:  "v1",
			ItemID:     "1",
			Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Mileage:    45000,
			Technician: "王師傅",
			Cost:       &cost,
		},
		Vehicle: models.Vehicle{ID: "v1", LicensePlate: "ABC-1234"},
		Item:    models.MaintenanceItem{ID: "1", Name: "機油更換", Category: models.CategoryEngine},
	}
}

func TestNewRecordEvent(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	ev := NewRecordEvent(sampleDetail(), now)

	assert.Equal(t, EventRecordCreated, ev.Type)
	assert.Equal(t, "ABC-1234", ev.LicensePlate)
	assert.Equal(t, "engine", ev.Category)
	assert.Equal(t, "2024-03-15", ev.Date)
	require.NotNil(t, ev.Cost)
	assert.Equal(t, 1800.0, *ev.Cost)
}

func TestMQTTPublisher_Publish(t *testing.T) {
	ev := NewRecordEvent(sampleDetail(), time.Now())

	t.Run("acknowledged", func(t *testing.T) {
		client := new(MockClient)
		client.On("Publish", "fleet/maintenance/v1", byte(1), false, mock.MatchedBy(func(payload []byte) bool {
			var got Event
			return json.Unmarshal(payload, &got) == nil && got.RecordID == "r1"
		})).Return(newFakeToken(nil, true))

		p := NewMQTTPublisher(client, "fleet/maintenance", 1)
		assert.NoError(t, p.Publish(context.Background(), ev))
		client.AssertExpectations(t)
	})

	t.Run("broker error", func(t *testing.T) {
		client := new(MockClient)
		client.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(newFakeToken(errors.New("not authorized"), true))

		err := NewMQTTPublisher(client, "fleet/maintenance", 0).Publish(context.Background(), ev)
		assert.ErrorContains(t, err, "not authorized")
	})

	t.Run("context cancelled", func(t *testing.T) {
		client := new(MockClient)
		client.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(newFakeToken(nil, false))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewMQTTPublisher(client, "fleet/maintenance", 0).Publish(ctx, ev)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNop(t *testing.T) {
	var n Notifier = Nop{}
	assert.NoError(t, n.Publish(context.Background(), Event{}))
}
