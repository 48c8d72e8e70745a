// Package crm receives WhatsApp Business webhook deliveries and stores the
// inbound messages.
//
// GET /webhook answers the subscription handshake by echoing hub.challenge
// when hub.verify_token matches the configured token. POST /webhook stores one
// Message per inbound message. Senders are linked to a Customer when the last
// digits of both phone numbers agree after removing formatting. Messages are
// keyed by their WhatsApp id, so redelivered payloads are stored once.
//
// Every newly stored message is announced on the event bus as
// crm.message.received.
package crm
