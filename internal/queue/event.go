// Package queue defines message payloads exchanged over the message broker.
package queue

// MessageActivatedEvent is published when an operator switches the welcome
// message served by GET /. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type MessageActivatedEvent struct {
    MessageID   uint64 `json:"message_id"`
    Body        string `json:"body"`
    ActivatedBy string `json:"activated_by"`
    ActivatedAt string `json:"activated_at"`
}
