package models

// Status is the review lifecycle stage of an alert.
type Status string

const (
	StatusNew            Status = "NEW"
	StatusReviewed       Status = "REVIEWED"
	StatusConfirmedFraud Status = "CONFIRMED_FRAUD"
	StatusFalsePositive  Status = "FALSE_POSITIVE"
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{StatusNew, StatusReviewed, StatusConfirmedFraud, StatusFalsePositive}

// ParseStatus returns the status for s and whether it is one of the known values.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusReviewed, StatusConfirmedFraud, StatusFalsePositive:
		return true
	}
	return false
}

// Label is the human-readable name. Unknown values are returned verbatim.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusReviewed:
		return "Reviewed"
	case StatusConfirmedFraud:
		return "Confirmed Fraud"
	case StatusFalsePositive:
		return "False Positive"
	default:
		return string(s)
	}
}

// Class is the style class used by badges. Unknown values have no class.
func (s Status) Class() string {
	switch s {
	case StatusNew:
		return "status-new"
	case StatusReviewed:
		return "status-reviewed"
	case StatusConfirmedFraud:
		return "status-fraud"
	case StatusFalsePositive:
		return "status-false"
	default:
		return ""
	}
}

func (s Status) String() string {
	return string(s)
}
