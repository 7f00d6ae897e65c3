package enums

// HolidayScope partitions the holiday calendar by administrative level.
type HolidayScope string

const (
	HolidayScopeNational HolidayScope = "nacional"
	HolidayScopeRegional HolidayScope = "comunidad"
	HolidayScopeLocal    HolidayScope = "local"
)

var validHolidayScopes = []HolidayScope{
	HolidayScopeNational,
	HolidayScopeRegional,
	HolidayScopeLocal,
}

// String implements fmt.Stringer.
func (s HolidayScope) String() string {
	return string(s)
}

// IsValid reports whether the value is a known HolidayScope.
func (s HolidayScope) IsValid() bool {
	for _, candidate := range validHolidayScopes {
		if candidate == s {
			return true
		}
	}
	return false
}
