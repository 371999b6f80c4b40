package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
)

// Context keys carried by character.changed events
const (
	EventKeyKind   = "kind"
	EventKeyTarget = "target"
	EventKeyBefore = "before"
	EventKeyAfter  = "after"
)

// publish announces an event whose source is the sheet. The sheet is
// already saved, so a failing handler is logged and not returned.
func (o *Orchestrator) publish(ctx context.Context, eventType string, c *pf2e.Character, change *pf2e.Change) {
	event := events.NewGameEvent(eventType, c, nil)
	if change != nil {
		event.Context().Set(EventKeyKind, string(change.Kind))
		event.Context().Set(EventKeyTarget, change.Target)
		event.Context().Set(EventKeyBefore, change.Before)
		event.Context().Set(EventKeyAfter, change.After)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "event handler failed",
			"event_type", eventType,
			"character_id", c.ID,
			"error", err.Error())
	}
}
