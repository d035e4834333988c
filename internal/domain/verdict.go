package domain

type Verdict string

const (
	VerdictDecisive     Verdict = "decisive"
	VerdictSupported    Verdict = "supported"
	VerdictTentative    Verdict = "tentative"
	VerdictInconclusive Verdict = "inconclusive"
)

// ComputeVerdict grades a best hypothesis by its singleton belief.
func ComputeVerdict(belief float64) Verdict {
	switch {
	case belief > 0.85:
		return VerdictDecisive
	case belief > 0.60:
		return VerdictSupported
	case belief > 0.30:
		return VerdictTentative
	default:
		return VerdictInconclusive
	}
}

func VerdictReason(belief float64) string {
	switch ComputeVerdict(belief) {
	case VerdictDecisive:
		return "belief > 0.85"
	case VerdictSupported:
		return "0.60 < belief <= 0.85"
	case VerdictTentative:
		return "0.30 < belief <= 0.60"
	default:
		return "belief <= 0.30"
	}
}

func AllVerdicts() []Verdict {
	return []Verdict{VerdictDecisive, VerdictSupported, VerdictTentative, VerdictInconclusive}
}

func ValidVerdict(v string) bool {
	switch Verdict(v) {
	case VerdictDecisive, VerdictSupported, VerdictTentative, VerdictInconclusive:
		return true
	}
	return false
}
