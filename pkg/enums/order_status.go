package enums

import "fmt"

// OrderStatus tracks the lifecycle of a customer order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ForwardOrderStatuses is the canonical delivery progression. Cancelled sits
// outside it and is rendered as a separate banner state.
var ForwardOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

var orderStatusDisplay = map[OrderStatus]string{
	OrderStatusPending:        "Pending",
	OrderStatusConfirmed:      "Confirmed",
	OrderStatusProcessing:     "Processing",
	OrderStatusShipped:        "Shipped",
	OrderStatusOutForDelivery: "Out for Delivery",
	OrderStatusDelivered:      "Delivered",
	OrderStatusCancelled:      "Cancelled",
}

var orderStatusIcons = map[OrderStatus]string{
	OrderStatusPending:        "bi-clock",
	OrderStatusConfirmed:      "bi-check-circle",
	OrderStatusProcessing:     "bi-gear",
	OrderStatusShipped:        "bi-truck",
	OrderStatusOutForDelivery: "bi-geo-alt",
	OrderStatusDelivered:      "bi-check-circle-fill",
	OrderStatusCancelled:      "bi-x-circle",
}

var orderStatusProgress = map[OrderStatus]int{
	OrderStatusPending:        10,
	OrderStatusConfirmed:      25,
	OrderStatusProcessing:     40,
	OrderStatusShipped:        65,
	OrderStatusOutForDelivery: 85,
	OrderStatusDelivered:      100,
	OrderStatusCancelled:      0,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// Display returns the human-readable label shown to customers and admins.
func (s OrderStatus) Display() string {
	if label, ok := orderStatusDisplay[s]; ok {
		return label
	}
	return string(s)
}

// Icon returns the UI icon hint for the status.
func (s OrderStatus) Icon() string {
	if icon, ok := orderStatusIcons[s]; ok {
		return icon
	}
	return "bi-circle"
}

// Progress returns the rough completion percentage used by order screens.
func (s OrderStatus) Progress() int {
	return orderStatusProgress[s]
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the forward progression defines no further
// stage after this status. Transitions out of a terminal status are still
// accepted and logged; this only informs display.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
