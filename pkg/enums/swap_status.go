package enums

// SwapStatus is the lifecycle state of a permuta request.
type SwapStatus string

const (
	SwapStatusPendiente SwapStatus = "pendiente"
	SwapStatusAceptada  SwapStatus = "aceptada"
	SwapStatusRechazada SwapStatus = "rechazada"
	SwapStatusCancelada SwapStatus = "cancelada"
)

var validSwapStatuses = []SwapStatus{
	SwapStatusPendiente,
	SwapStatusAceptada,
	SwapStatusRechazada,
	SwapStatusCancelada,
}

// String implements fmt.Stringer.
func (s SwapStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SwapStatus.
func (s SwapStatus) IsValid() bool {
	for _, candidate := range validSwapStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state admits no further transitions.
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusAceptada || s == SwapStatusRechazada || s == SwapStatusCancelada
}
