package reports

// ChartRequest is the dynamic chart body. XAxis and YAxis are mandatory axis
// keys; AggregationMethod is one of sum, count, avg; Sorting is asc or desc.
// Filters hold axis-key to exact-value constraints.
type ChartRequest struct {
	XAxis             string            `json:"xAxis"`
	YAxis             string            `json:"yAxis"`
	AggregationMethod string            `json:"aggregationMethod"`
	Sorting           string            `json:"sorting"`
	Filters           map[string]string `json:"filters"`
}

// ChartPoint is one {label, value} pair of the produced series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// OverviewStats backs GET /reports/stats.
type OverviewStats struct {
	Patients     int     `json:"patients"`
	Appointments int     `json:"appointments"`
	Treatments   int     `json:"treatments"`
	Invoices     int     `json:"invoices"`
	Revenue      float64 `json:"revenue"`
}

// BranchStat is one row of GET /reports/branch-stats.
type BranchStat struct {
	BranchID     string  `json:"branch_id"`
	BranchName   string  `json:"branch_name"`
	Patients     int     `json:"patients"`
	Appointments int     `json:"appointments"`
	Revenue      float64 `json:"revenue"`
}

// DoctorStat is one row of GET /reports/doctor-performance.
type DoctorStat struct {
	DoctorID     string `json:"doctor_id"`
	DoctorName   string `json:"doctor_name"`
	Appointments int    `json:"appointments"`
	Completed    int    `json:"completed"`
	Treatments   int    `json:"treatments"`
}

// RevenuePoint is one monthly bucket of GET /reports/revenue.
type RevenuePoint struct {
	Month  string  `json:"month"`
	Total  float64 `json:"total"`
	Paid   float64 `json:"paid"`
	Unpaid float64 `json:"unpaid"`
}

// PatientStats backs GET /reports/patients.
type PatientStats struct {
	Total     int            `json:"total"`
	ByGender  map[string]int `json:"by_gender"`
	NewLast30 int            `json:"new_last_30"`
}

// TreatmentStats backs GET /reports/treatments.
type TreatmentStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Revenue  float64        `json:"revenue"`
}
