package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/realtime"
	"github.com/campushare/campushare-backend/internal/realtime/bus"
)

// InstitutionChannel names the SSE channel carrying an institution's change
// notifications.
func InstitutionChannel(institutionID uuid.UUID) string {
	return "institution:" + institutionID.String()
}

// Notifier broadcasts change notifications on the local hub and, when a bus is
// configured, across instances. A nil *Notifier is valid and does nothing;
// every core operation works without a subscriber.
type Notifier struct {
	hub *realtime.SSEHub
	bus bus.Bus
	log *logger.Logger
}

func NewNotifier(hub *realtime.SSEHub, b bus.Bus, baseLog *logger.Logger) *Notifier {
	return &Notifier{
		hub: hub,
		bus: b,
		log: baseLog.With("service", "Notifier"),
	}
}

func (n *Notifier) ResourceChanged(ctx context.Context, institutionID, resourceID uuid.UUID) {
	n.publish(ctx, realtime.SSEMessage{
		Channel: InstitutionChannel(institutionID),
		Event:   realtime.SSEEventResourceChanged,
		Data:    map[string]string{"resource_id": resourceID.String()},
	})
}

func (n *Notifier) ReportChanged(ctx context.Context, institutionID, reportID uuid.UUID) {
	n.publish(ctx, realtime.SSEMessage{
		Channel: InstitutionChannel(institutionID),
		Event:   realtime.SSEEventReportChanged,
		Data:    map[string]string{"report_id": reportID.String()},
	})
}

func (n *Notifier) publish(ctx context.Context, msg realtime.SSEMessage) {
	if n == nil {
		return
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("Failed to publish change notification", "channel", msg.Channel, "error", err)
		}
	}
}
