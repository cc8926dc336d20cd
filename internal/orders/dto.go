package orders

import (
	"time"

	"github.com/mahedios/estore-backend/pkg/db/models"
	"github.com/mahedios/estore-backend/pkg/enums"
	"github.com/mahedios/estore-backend/pkg/pagination"
)

// Filters describe the inputs supported by the admin order list.
type Filters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Query    string
}

// List wraps an order page plus its pagination metadata.
type List struct {
	Orders []models.Order  `json:"orders"`
	Page   pagination.Page `json:"page"`
}

// SetStatusInput carries an admin status transition request.
type SetStatusInput struct {
	Status enums.OrderStatus
	Note   string
	Actor  string
}

// TimelineStage is one of the six forward stages shown on the tracking page.
type TimelineStage struct {
	Status    enums.OrderStatus `json:"status"`
	Label     string            `json:"label"`
	Icon      string            `json:"icon"`
	Completed bool              `json:"completed"`
	Current   bool              `json:"current"`
	Date      *time.Time        `json:"date,omitempty"`
}

// Timeline is the tracking view derived from an order and its history.
type Timeline struct {
	Stages      []TimelineStage `json:"stages"`
	Cancelled   bool            `json:"cancelled"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	Progress    int             `json:"progress"`
}
