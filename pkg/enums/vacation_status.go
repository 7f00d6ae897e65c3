package enums

// VacationStatus is the lifecycle state of a vacation request.
//
// Only the pending state is reachable today: the desktop workflow that would
// approve or reject requests has no API counterpart yet.
type VacationStatus string

const (
	VacationStatusPending  VacationStatus = "pendiente"
	VacationStatusApproved VacationStatus = "aprobada"
	VacationStatusRejected VacationStatus = "rechazada"
)

var validVacationStatuses = []VacationStatus{
	VacationStatusPending,
	VacationStatusApproved,
	VacationStatusRejected,
}

// String implements fmt.Stringer.
func (s VacationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VacationStatus.
func (s VacationStatus) IsValid() bool {
	for _, candidate := range validVacationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}
