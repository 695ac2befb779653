package review

import "testing"

func TestSeverityRank(t *testing.T) {
	if !(SeverityRank(SeverityHigh) > SeverityRank(SeverityMedium) &&
		SeverityRank(SeverityMedium) > SeverityRank(SeverityLow)) {
		t.Error("severity ranks out of order")
	}
	if SeverityRank(Severity("unknown")) != 0 {
		t.Error("unknown severity should rank lowest")
	}
}
