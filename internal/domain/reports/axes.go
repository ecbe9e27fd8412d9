package reports

// Axis kinds. Kind decides how the chart groups: date axes bucket by month,
// category axes group by distinct value, numeric axes are aggregated measures.
const (
	KindDate     = "date"
	KindCategory = "category"
	KindNumeric  = "numeric"
)

// AxisOption describes one selectable chart field. The set is enumerated in
// code and doubles as the allow list: only these keys ever reach SQL, so
// caller input never names a column directly.
type AxisOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Table  string `json:"table"`
	Column string `json:"-"`
}

var xAxisOptions = []AxisOption{
	{Value: "patient_created", Label: "Hasta Kayıt Tarihi", Kind: KindDate, Table: "patients", Column: "created_at"},
	{Value: "appointment_date", Label: "Randevu Tarihi", Kind: KindDate, Table: "appointments", Column: "starts_at"},
	{Value: "treatment_date", Label: "Tedavi Tarihi", Kind: KindDate, Table: "treatments", Column: "created_at"},
	{Value: "invoice_date", Label: "Fatura Tarihi", Kind: KindDate, Table: "invoices", Column: "issued_at"},
	{Value: "patient_gender", Label: "Hasta Cinsiyeti", Kind: KindCategory, Table: "patients", Column: "gender"},
	{Value: "appointment_status", Label: "Randevu Durumu", Kind: KindCategory, Table: "appointments", Column: "status"},
	{Value: "treatment_status", Label: "Tedavi Durumu", Kind: KindCategory, Table: "treatments", Column: "status"},
	{Value: "treatment_name", Label: "Tedavi Türü", Kind: KindCategory, Table: "treatments", Column: "name"},
	{Value: "invoice_status", Label: "Fatura Durumu", Kind: KindCategory, Table: "invoices", Column: "status"},
	{Value: "invoice_currency", Label: "Fatura Para Birimi", Kind: KindCategory, Table: "invoices", Column: "currency"},
}

var yAxisOptions = []AxisOption{
	{Value: "record_count", Label: "Kayıt Sayısı", Kind: KindNumeric, Table: "", Column: ""},
	{Value: "invoice_amount", Label: "Fatura Tutarı", Kind: KindNumeric, Table: "invoices", Column: "amount"},
	{Value: "treatment_price", Label: "Tedavi Ücreti", Kind: KindNumeric, Table: "treatments", Column: "price"},
}

// AxisOptions is the static metadata returned to the selection UI.
func AxisOptions() map[string][]AxisOption {
	return map[string][]AxisOption{
		"xAxis": xAxisOptions,
		"yAxis": yAxisOptions,
	}
}

func findAxis(options []AxisOption, value string) (AxisOption, bool) {
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return AxisOption{}, false
}
