package push

import (
	"context"
	"strconv"

	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/utils"
)

// Notifier broadcasts chat changes. Delivery is fire-and-forget: failures are
// logged and never fail the request that caused them.
type Notifier struct {
	pub Publisher
}

func NewNotifier(pub Publisher) *Notifier {
	return &Notifier{pub: pub}
}

func (n *Notifier) EmitOfficerChat(ctx context.Context, msg *models.OfficerChatView) {
	n.emit(ctx, EventOfficerChat, msg)
}

func (n *Notifier) EmitOfficerChatDeleted(ctx context.Context, id int64) {
	n.emit(ctx, EventOfficerChatDeleted, strconv.FormatInt(id, 10))
}

func (n *Notifier) emit(ctx context.Context, name string, data interface{}) {
	l := utils.LogCtx(ctx)
	event, err := NewEvent(name, data)
	if err != nil {
		l.Error().Err(err).Str("event", name).Msg("failed to encode push event")
		return
	}
	if err := n.pub.Publish(ctx, event); err != nil {
		l.Error().Err(err).Str("event", name).Msg("failed to publish push event")
	}
}
