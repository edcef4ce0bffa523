package request

type ReportFilter struct {
	StartDate string
	EndDate   string
	Type      string
	Movie     string
}
