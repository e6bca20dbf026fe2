package enums

import "fmt"

// ActorRole identifies who is issuing a status transition.
type ActorRole string

const (
	ActorRoleAdmin       ActorRole = "admin"
	ActorRoleDistributor ActorRole = "distributor"
	ActorRoleDealer      ActorRole = "dealer"
	ActorRoleWorker      ActorRole = "worker"
)

var validActorRoles = []ActorRole{
	ActorRoleAdmin,
	ActorRoleDistributor,
	ActorRoleDealer,
	ActorRoleWorker,
}

// CanAdvanceOrders reports whether the role may drive the forward progression.
func (r ActorRole) CanAdvanceOrders() bool {
	return r == ActorRoleAdmin || r == ActorRoleDistributor
}

// IsValid reports whether the value is a known ActorRole.
func (r ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
