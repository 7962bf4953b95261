package models

// RiskTier is a display-only bucket derived from a risk score.
type RiskTier string

const (
	RiskLow      RiskTier = "low"
	RiskMedium   RiskTier = "medium"
	RiskHigh     RiskTier = "high"
	RiskCritical RiskTier = "critical"
)

// ClassifyRisk maps a score to its tier. Each threshold is inclusive on its
// lower bound, so a score sitting on a boundary lands in the higher tier.
// Scores outside 0-100 still resolve to low or critical.
func ClassifyRisk(score float64) RiskTier {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Class is the style class for the tier, e.g. "risk-critical".
func (t RiskTier) Class() string {
	return "risk-" + string(t)
}
