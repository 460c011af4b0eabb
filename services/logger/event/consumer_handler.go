package event

import (
	"context"
	"encoding/json"
	"time"

	applog "matchmaker/pkg/logger"
)

const insertTimeout = 5 * time.Second

type LogStore interface {
	InsertLog(ctx context.Context, log applog.BaseLog) error
}

type EventHandler struct {
	store LogStore
}

func NewEventHandler(store LogStore) *EventHandler {
	return &EventHandler{store: store}
}

// HandleLogEvent는 수집된 로그 레코드를 저장합니다
func (e *EventHandler) HandleLogEvent(payload json.RawMessage) {
	var baseLog applog.BaseLog
	if err := json.Unmarshal(payload, &baseLog); err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to unmarshal log event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	if err := e.store.InsertLog(ctx, baseLog); err != nil {
		applog.Logger.Error().Err(err).Int("service", baseLog.Service).Msg("❌ Failed to insert log")
		return
	}

	applog.Logger.Debug().Int("service", baseLog.Service).Str("message", baseLog.Message).Msg("✅ Log saved")
}
