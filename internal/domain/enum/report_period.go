package enum

// ReportPeriod selects how a report window is derived
type ReportPeriod string

const (
	ReportPeriodAnnual    ReportPeriod = "annual"
	ReportPeriodQuarterly ReportPeriod = "quarterly"
	ReportPeriodMonthly   ReportPeriod = "monthly"
	ReportPeriodCustom    ReportPeriod = "custom"
)

// Valid reports whether p is one of the known periods
func (p ReportPeriod) Valid() bool {
	switch p {
	case ReportPeriodAnnual, ReportPeriodQuarterly, ReportPeriodMonthly, ReportPeriodCustom:
		return true
	}
	return false
}
