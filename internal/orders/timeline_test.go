package orders

import (
	"testing"
	"time"

	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/enums"
)

func historyAt(status enums.OrderStatus, at time.Time) models.OrderStatusHistory {
	return models.OrderStatusHistory{Status: status, CreatedAt: at}
}

func TestBuildTimelineCompletedByOrdinal(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	order := &models.Order{Status: enums.OrderStatusProcessing}
	history := []models.OrderStatusHistory{
		historyAt(enums.OrderStatusPending, base),
		historyAt(enums.OrderStatusConfirmed, base.Add(time.Hour)),
		historyAt(enums.OrderStatusProcessing, base.Add(2*time.Hour)),
	}

	timeline := BuildTimeline(order, history)
	if len(timeline.Stages) != 6 {
		t.Fatalf("expected 6 stages, got %d", len(timeline.Stages))
	}
	if timeline.Cancelled {
		t.Fatal("unexpected cancelled flag")
	}

	for i, stage := range timeline.Stages {
		wantCompleted := i <= 2
		if stage.Completed != wantCompleted {
			t.Fatalf("stage %s completed=%v, want %v", stage.Status, stage.Completed, wantCompleted)
		}
		wantCurrent := i == 2
		if stage.Current != wantCurrent {
			t.Fatalf("stage %s current=%v, want %v", stage.Status, stage.Current, wantCurrent)
		}
	}

	if timeline.Stages[1].Date == nil || !timeline.Stages[1].Date.Equal(base.Add(time.Hour)) {
		t.Fatalf("confirmed stage date wrong: %v", timeline.Stages[1].Date)
	}
	if timeline.Stages[3].Date != nil {
		t.Fatal("shipped stage should have no date yet")
	}
	if timeline.Progress != enums.OrderStatusProcessing.Progress() {
		t.Fatalf("unexpected progress %d", timeline.Progress)
	}
}

func TestBuildTimelineUsesLatestMatchingHistory(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	order := &models.Order{Status: enums.OrderStatusConfirmed}
	// a terminal override sent the order back and it was confirmed twice
	history := []models.OrderStatusHistory{
		historyAt(enums.OrderStatusPending, base),
		historyAt(enums.OrderStatusConfirmed, base.Add(time.Hour)),
		historyAt(enums.OrderStatusPending, base.Add(2*time.Hour)),
		historyAt(enums.OrderStatusConfirmed, base.Add(3*time.Hour)),
	}

	timeline := BuildTimeline(order, history)
	if !timeline.Stages[1].Date.Equal(base.Add(3 * time.Hour)) {
		t.Fatalf("expected latest confirmed date, got %v", timeline.Stages[1].Date)
	}
}

func TestBuildTimelineCancelled(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	order := &models.Order{Status: enums.OrderStatusCancelled}
	history := []models.OrderStatusHistory{
		historyAt(enums.OrderStatusPending, base),
		historyAt(enums.OrderStatusCancelled, base.Add(time.Hour)),
	}

	timeline := BuildTimeline(order, history)
	if !timeline.Cancelled {
		t.Fatal("expected cancelled flag")
	}
	if timeline.CancelledAt == nil || !timeline.CancelledAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected cancelled date %v", timeline.CancelledAt)
	}
	for _, stage := range timeline.Stages {
		if stage.Completed || stage.Current {
			t.Fatalf("stage %s should be inert on a cancelled order", stage.Status)
		}
	}
	if timeline.Progress != 0 {
		t.Fatalf("expected progress 0, got %d", timeline.Progress)
	}
}

func TestBuildTimelineDelivered(t *testing.T) {
	order := &models.Order{Status: enums.OrderStatusDelivered}
	timeline := BuildTimeline(order, nil)

	for i, stage := range timeline.Stages {
		if !stage.Completed {
			t.Fatalf("stage %s should be completed", stage.Status)
		}
		if stage.Current != (i == len(timeline.Stages)-1) {
			t.Fatalf("only the final stage should be current")
		}
	}
	if timeline.Progress != 100 {
		t.Fatalf("expected progress 100, got %d", timeline.Progress)
	}
}
