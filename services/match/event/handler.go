package event

import (
	"context"
	"encoding/json"

	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/mq"
	eventtypes "matchmaker/pkg/types/eventtype"
)

type RankingInvalidator interface {
	InvalidateRankings(ctx context.Context) error
}

type EventHandler struct {
	invalidator RankingInvalidator
}

func NewEventHandler(invalidator RankingInvalidator) *EventHandler {
	return &EventHandler{invalidator: invalidator}
}

// 유저 생성/수정/삭제 모두 랭킹 무효화
func (h *EventHandler) Handlers(ctx context.Context) mq.EventHandlerMap {
	handle := func(data json.RawMessage) { h.HandleUserChanged(ctx, data) }
	return mq.EventHandlerMap{
		eventtypes.EventTypeUserCreated: handle,
		eventtypes.EventTypeUserUpdated: handle,
		eventtypes.EventTypeUserDeleted: handle,
	}
}

func (h *EventHandler) HandleUserChanged(ctx context.Context, data json.RawMessage) {
	var eventData eventtypes.UserEvent
	if err := json.Unmarshal(data, &eventData); err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to unmarshal user event")
		return
	}

	if err := h.invalidator.InvalidateRankings(ctx); err != nil {
		applog.Logger.Error().Err(err).Int("user_id", eventData.UserID).Msg("❌ Failed to invalidate rankings")
		return
	}

	applog.Info(applog.LogEventMatchCacheInvalidate, "Rankings invalidated", eventData)
}
