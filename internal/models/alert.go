package models

// Alert is a flagged transaction awaiting or having received human review.
//
// Optional fields are pointers: a nil ReviewedBy means the alert was never
// reviewed, while a non-nil empty string means the reviewer was recorded as
// blank. AlertData is nil when the backend sent no payload.
type Alert struct {
	ID            int64                  `json:"id"`
	TransactionID string                 `json:"transactionId"`
	RiskScore     float64                `json:"riskScore"`
	Status        Status                 `json:"status"`
	CreatedAt     Timestamp              `json:"createdAt"`
	ReviewedBy    *string                `json:"reviewedBy,omitempty"`
	ReviewedAt    *Timestamp             `json:"reviewedAt,omitempty"`
	Notes         *string                `json:"notes,omitempty"`
	AlertData     map[string]interface{} `json:"alertData,omitempty"`
}

// RiskTier classifies the alert's score.
func (a Alert) RiskTier() RiskTier {
	return ClassifyRisk(a.RiskScore)
}

// HasAlertData reports whether the backend attached a payload.
func (a Alert) HasAlertData() bool {
	return a.AlertData != nil
}

// StatusUpdate is the partial update applied by a reviewer. A nil
// ReviewedBy or Notes clears the stored value.
type StatusUpdate struct {
	Status     Status
	ReviewedBy *string
	Notes      *string
}
