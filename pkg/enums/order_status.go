package enums

import "fmt"

// OrderStatus tracks the production lifecycle of a dealer order.
type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProduction OrderStatus = "production"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusProduction,
	OrderStatusReady,
	OrderStatusDispatched,
	OrderStatusCancelled,
}

// orderStatusTransitions is the closed transition table. Dispatched and
// cancelled have no outgoing edges.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusReceived:   {OrderStatusProduction, OrderStatusCancelled},
	OrderStatusProduction: {OrderStatusReady},
	OrderStatusReady:      {OrderStatusDispatched},
	OrderStatusDispatched: {},
	OrderStatusCancelled:  {},
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
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

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return len(orderStatusTransitions[s]) == 0 && s.IsValid()
}

// CanTransition reports whether the table allows moving to target.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, candidate := range orderStatusTransitions[s] {
		if candidate == target {
			return true
		}
	}
	return false
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
