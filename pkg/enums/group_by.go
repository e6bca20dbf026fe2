package enums

import "fmt"

// GroupBy selects the read-model grouping key for order listings.
type GroupBy string

const (
	GroupByOrder  GroupBy = "order"
	GroupByDealer GroupBy = "dealer"
	GroupByDesign GroupBy = "design"
	GroupByColor  GroupBy = "color"
)

var validGroupBys = []GroupBy{
	GroupByOrder,
	GroupByDealer,
	GroupByDesign,
	GroupByColor,
}

// IsValid reports whether the value is a known GroupBy.
func (g GroupBy) IsValid() bool {
	for _, candidate := range validGroupBys {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGroupBy converts raw input into a GroupBy; empty means per-order.
func ParseGroupBy(value string) (GroupBy, error) {
	if value == "" {
		return GroupByOrder, nil
	}
	for _, candidate := range validGroupBys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group by %q", value)
}
