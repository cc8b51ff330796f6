package assess

// Verdict is the rendered threat assessment.
//
// Standby is the boot screen before any classification arrives; the other
// values are derived from the window means by Classify.
type Verdict uint8

const (
	Standby Verdict = iota
	Unlikely
	Indeterminate
	SomewhatLikely
	HighLikelihood
)

func (v Verdict) String() string {
	switch v {
	case Standby:
		return "standby"
	case Unlikely:
		return "unlikely"
	case Indeterminate:
		return "indeterminate"
	case SomewhatLikely:
		return "somewhat_likely"
	case HighLikelihood:
		return "high_likelihood"
	default:
		return "unknown"
	}
}

// VerdictFromCode maps a wire code back onto a Verdict.
func VerdictFromCode(c uint8) Verdict {
	if c > uint8(HighLikelihood) {
		return Standby
	}
	return Verdict(c)
}

// Classify maps the two window means onto a verdict.
//
// Bands are checked in order and the first match wins. The bands do not
// cover the full mean plane: combinations that fall in the gap return
// ok=false and callers hold the previous rendering.
func Classify(meanPerson, meanNoPerson float32) (v Verdict, ok bool) {
	switch {
	case meanPerson > 0.8 && meanNoPerson < 0.2:
		return HighLikelihood, true
	case meanPerson > 0.7 && meanNoPerson < 0.5:
		return SomewhatLikely, true
	case meanPerson > 0.5 && meanNoPerson > 0.5:
		return Indeterminate, true
	case meanPerson < 0.5 && meanNoPerson > 0.5:
		return Unlikely, true
	default:
		return Standby, false
	}
}
