package crm

import (
	"context"
	"testing"
	"time"

	"catalog-sync/core/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, cfg Config) (*Service, *recordingPublisher) {
	t.Helper()
	db := newTestDB(t)
	pub := &recordingPublisher{}
	svc := NewService(db, nil, pub, cfg, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, pub
}

func TestService_RecordLinksCustomer(t *testing.T) {
	svc, pub := newTestService(t, Config{PhoneMatchDigits: 9})
	seedCustomers(t, svc.db, Customer{FirstName: "Ana", Phone: "987 654 321"})

	stored, err := svc.Record(context.Background(), textPayload("wamid.1", "51987654321", "Ana", "Hola"))

	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	var msg Message
	require.NoError(t, svc.db.First(&msg).Error)
	require.NotNil(t, msg.CustomerID)
	assert.Equal(t, uint(1), *msg.CustomerID)
	assert.Equal(t, DirectionInbound, msg.Direction)
	assert.Equal(t, "Hola", msg.Content)
	assert.False(t, msg.Read)
	assert.Equal(t, "Ana", msg.ProfileName)

	require.Len(t, pub.keys, 1)
	assert.Equal(t, events.MessageReceived, pub.keys[0])
	event := pub.data[0].(MessageEvent)
	assert.Equal(t, msg.ID, event.MessageID)
	assert.Equal(t, "wamid.1", event.WhatsAppID)
}

func TestService_RecordUnknownSender(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	stored, err := svc.Record(context.Background(), textPayload("wamid.2", "51900000000", "", "?"))

	require.NoError(t, err)
	assert.Equal(t, 1, stored)

	var msg Message
	require.NoError(t, svc.db.First(&msg).Error)
	assert.Nil(t, msg.CustomerID)
	assert.Equal(t, "51900000000", msg.Phone)
}

func TestService_RecordIsIdempotent(t *testing.T) {
	svc, pub := newTestService(t, Config{})
	payload := textPayload("wamid.3", "51911111111", "Eva", "again")

	first, err := svc.Record(context.Background(), payload)
	require.NoError(t, err)
	second, err := svc.Record(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Zero(t, second)

	var count int64
	require.NoError(t, svc.db.Model(&Message{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Len(t, pub.keys, 1, "duplicates are not announced")
}

func TestService_VerifyToken(t *testing.T) {
	svc, _ := newTestService(t, Config{VerifyToken: "s3cret"})
	assert.True(t, svc.VerifyToken("s3cret"))
	assert.False(t, svc.VerifyToken("wrong"))
	assert.False(t, svc.VerifyToken(""))

	empty, _ := newTestService(t, Config{})
	assert.False(t, empty.VerifyToken(""), "an unset token never verifies")
}
