package services

type DiscrepancyKind int

const (
	DiscrepancyExact DiscrepancyKind = iota
	DiscrepancyUnderwatered
	DiscrepancyOverwatered
)

const (
	discrepancyClassError = "error-true"
	discrepancyClassExact = "value"
)

// Discrepancy describes how far a watering was from the recommendation.
// Amount is always non-negative, in millilitres.
type Discrepancy struct {
	Kind     DiscrepancyKind
	Amount   int
	LabelKey string
	CSSClass string
}

// ClassifyDiscrepancy reads the sign of errorRateK: positive means the plant
// got less than recommended, negative more.
func ClassifyDiscrepancy(errorRateK int) Discrepancy {
	switch {
	case errorRateK > 0:
		return Discrepancy{
			Kind:     DiscrepancyUnderwatered,
			Amount:   errorRateK,
			LabelKey: "diary.discrepancy.underwatered",
			CSSClass: discrepancyClassError,
		}
	case errorRateK < 0:
		return Discrepancy{
			Kind:     DiscrepancyOverwatered,
			Amount:   -errorRateK,
			LabelKey: "diary.discrepancy.overwatered",
			CSSClass: discrepancyClassError,
		}
	default:
		return Discrepancy{
			Kind:     DiscrepancyExact,
			LabelKey: "diary.discrepancy.exact",
			CSSClass: discrepancyClassExact,
		}
	}
}

func (discrepancy Discrepancy) Highlighted() bool {
	return discrepancy.Kind != DiscrepancyExact
}
