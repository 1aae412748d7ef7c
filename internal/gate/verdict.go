package gate

const (
	PassedMessage = "Quality gate passed"
	FailedMessage = "Quality gate failed"
)

// Verdict is the running result over every coverage value seen in a report.
type Verdict struct {
	Threshold float64
	Passed    bool
	Observed  int
	Lowest    float64
}

func NewVerdict(threshold float64) Verdict {
	return Verdict{Threshold: threshold, Passed: true}
}

// Observe folds one value into the verdict. A value equal to the threshold
// passes; once failed the verdict stays failed.
func (verdict Verdict) Observe(value float64) Verdict {
	if verdict.Observed == 0 || value < verdict.Lowest {
		verdict.Lowest = value
	}
	verdict.Observed++
	if value < verdict.Threshold {
		verdict.Passed = false
	}
	return verdict
}

// Fold reduces values into a single verdict.
func Fold(threshold float64, values ...float64) Verdict {
	verdict := NewVerdict(threshold)
	for _, value := range values {
		verdict = verdict.Observe(value)
	}
	return verdict
}

func (verdict Verdict) Message() string {
	if verdict.Passed {
		return PassedMessage
	}
	return FailedMessage
}
