// Package events publishes domain events to a RabbitMQ topic exchange.
//
// Events are JSON Envelopes routed by type: sync.completed after every
// inventory run and crm.message.received after an inbound WhatsApp message is
// stored. When no AMQP URL is configured New returns Noop and publishing is a
// no-op, so callers never branch on whether messaging is enabled.
package events
