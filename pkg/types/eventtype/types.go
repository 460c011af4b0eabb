package eventtypes

import (
	"encoding/json"
	"time"
)

type EventPayload struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// Event Types
const (
	EventTypeUserCreated = "user.created"
	EventTypeUserUpdated = "user.updated"
	EventTypeUserDeleted = "user.deleted"
	EventTypeLog         = "log"
)

// UserEvent 유저 생성/수정/삭제 이벤트
type UserEvent struct {
	UserID     int       `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
