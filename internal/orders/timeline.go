package orders

import (
	"time"

	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/enums"
)

// BuildTimeline derives the tracking view from an order and its history.
// The six forward stages are marked completed by ordinal against the
// order's current status; a cancelled order marks nothing completed and is
// surfaced through the Cancelled flag instead.
func BuildTimeline(order *models.Order, history []models.OrderStatusHistory) *Timeline {
	timeline := &Timeline{
		Stages:   make([]TimelineStage, 0, len(enums.ForwardOrderStatuses)),
		Progress: order.Status.Progress(),
	}

	cancelled := order.Status == enums.OrderStatusCancelled
	timeline.Cancelled = cancelled
	if cancelled {
		timeline.CancelledAt = latestDateFor(history, enums.OrderStatusCancelled)
	}

	currentOrdinal := forwardOrdinal(order.Status)
	for ordinal, status := range enums.ForwardOrderStatuses {
		stage := TimelineStage{
			Status: status,
			Label:  status.Display(),
			Icon:   status.Icon(),
			Date:   latestDateFor(history, status),
		}
		if !cancelled && currentOrdinal >= 0 {
			stage.Completed = ordinal <= currentOrdinal
			stage.Current = ordinal == currentOrdinal
		}
		timeline.Stages = append(timeline.Stages, stage)
	}

	return timeline
}

// forwardOrdinal returns the stage index of a status, -1 for cancelled.
func forwardOrdinal(status enums.OrderStatus) int {
	for i, candidate := range enums.ForwardOrderStatuses {
		if candidate == status {
			return i
		}
	}
	return -1
}

// latestDateFor returns the creation time of the most recent history record
// with the given status.
func latestDateFor(history []models.OrderStatusHistory, status enums.OrderStatus) *time.Time {
	var latest *time.Time
	for i := range history {
		if history[i].Status != status {
			continue
		}
		if latest == nil || history[i].CreatedAt.After(*latest) {
			t := history[i].CreatedAt
			latest = &t
		}
	}
	return latest
}
