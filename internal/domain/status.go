package domain

// User status constants.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBanned   = "banned"
)

// ValidStatuses returns the set of valid user statuses.
func ValidStatuses() []string {
	return []string{StatusActive, StatusInactive, StatusBanned}
}

// IsValidStatus checks whether the given status string is a valid user status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
