package enums

import "fmt"

// StatusFilter groups order statuses into the classes the dashboards list by.
type StatusFilter string

const (
	StatusFilterAll       StatusFilter = "all"
	StatusFilterPending   StatusFilter = "pending"
	StatusFilterCompleted StatusFilter = "completed"
)

var validStatusFilters = []StatusFilter{
	StatusFilterAll,
	StatusFilterPending,
	StatusFilterCompleted,
}

// Statuses returns the order statuses the filter matches; nil means no filter.
func (f StatusFilter) Statuses() []OrderStatus {
	switch f {
	case StatusFilterPending:
		return []OrderStatus{OrderStatusReceived, OrderStatusProduction, OrderStatusReady}
	case StatusFilterCompleted:
		return []OrderStatus{OrderStatusDispatched}
	default:
		return nil
	}
}

// IsValid reports whether the value is a known StatusFilter.
func (f StatusFilter) IsValid() bool {
	for _, candidate := range validStatusFilters {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseStatusFilter converts raw input into a StatusFilter; empty means all.
func ParseStatusFilter(value string) (StatusFilter, error) {
	if value == "" {
		return StatusFilterAll, nil
	}
	for _, candidate := range validStatusFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid status filter %q", value)
}
