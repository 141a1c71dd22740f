package worker

import (
	"github.com/spec-kit/carenotes/internal/events"
	"github.com/spec-kit/carenotes/internal/service"
)

// StartNotificationWorker subscribes the notification service to every
// event type it routes.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService) {
	for _, eventType := range []events.EventType{
		events.EventPlacementCreated,
		events.EventPlacementStatusChanged,
		events.EventPlacementMatched,
		events.EventTimeOffDecided,
		events.EventShiftSwapDecided,
		events.EventMedicationRecorded,
		events.EventPocketMoneyDisbursed,
	} {
		dispatcher.Subscribe(eventType, notifications.HandleEvent)
	}
}
