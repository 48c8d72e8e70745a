package crm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Customer{}, &Message{}))
	return db
}

func seedCustomers(t *testing.T, db *gorm.DB, customers ...Customer) {
	t.Helper()
	for i := range customers {
		require.NoError(t, db.Create(&customers[i]).Error)
	}
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	data []any
}

func (p *recordingPublisher) Publish(_ context.Context, key string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.data = append(p.data, data)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func textPayload(id, from, name, body string) WebhookPayload {
	msg := WhatsAppMessage{ID: id, From: from, Timestamp: "1767225600", Type: "text"}
	msg.Text = &struct {
		Body string `json:"body"`
	}{Body: body}

	contact := Contact{WaID: from}
	contact.Profile.Name = name

	return WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []Entry{{
			Changes: []Change{{
				Field: "messages",
				Value: ChangeValue{Contacts: []Contact{contact}, Messages: []WhatsAppMessage{msg}},
			}},
		}},
	}
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
