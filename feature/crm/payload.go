package crm

import (
	"strconv"
	"strings"
	"time"
)

// WebhookPayload is the subset of the WhatsApp Business webhook body we read.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one business account entry of a webhook delivery.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change is one field change within an entry.
type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

// ChangeValue carries the messages of a change and their sender contacts.
type ChangeValue struct {
	Contacts []Contact         `json:"contacts"`
	Messages []WhatsAppMessage `json:"messages"`
}

// Contact is a sender profile keyed by WhatsApp id.
type Contact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

// WhatsAppMessage is one inbound message. Text is set only for text messages.
type WhatsAppMessage struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
}

// InboundMessage is a webhook message flattened for storage.
type InboundMessage struct {
	WhatsAppID  string
	From        string
	ProfileName string
	Content     string
	ReceivedAt  time.Time
}

// Inbound extracts every message of the payload. Status-only payloads yield none.
func (p WebhookPayload) Inbound(now time.Time) []InboundMessage {
	var out []InboundMessage
	for _, e := range p.Entry {
		for _, c := range e.Changes {
			names := make(map[string]string, len(c.Value.Contacts))
			for _, ct := range c.Value.Contacts {
				names[ct.WaID] = ct.Profile.Name
			}

			for _, m := range c.Value.Messages {
				name, ok := names[m.From]
				if !ok && len(c.Value.Contacts) > 0 {
					name = c.Value.Contacts[0].Profile.Name
				}
				out = append(out, InboundMessage{
					WhatsAppID:  m.ID,
					From:        m.From,
					ProfileName: name,
					Content:     messageContent(m),
					ReceivedAt:  messageTime(m.Timestamp, now),
				})
			}
		}
	}
	return out
}

// messageContent keeps text bodies and stores a [TYPE] placeholder for media.
func messageContent(m WhatsAppMessage) string {
	if m.Type == "text" && m.Text != nil {
		return m.Text.Body
	}
	t := strings.ToUpper(strings.TrimSpace(m.Type))
	if t == "" {
		t = "UNKNOWN"
	}
	return "[" + t + "]"
}

func messageTime(ts string, now time.Time) time.Time {
	if sec, err := strconv.ParseInt(ts, 10, 64); err == nil && sec > 0 {
		return time.Unix(sec, 0).UTC()
	}
	return now.UTC()
}
