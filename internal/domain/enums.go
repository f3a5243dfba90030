package domain

// TaxRegime classifies which GST components apply to an invoice.
type TaxRegime string

const (
	// RegimeIntraState applies CGST+SGST when buyer and seller share a state.
	RegimeIntraState TaxRegime = "intra_state"
	// RegimeInterState applies IGST when buyer and seller states differ.
	RegimeInterState TaxRegime = "inter_state"
	// RegimeExempt carries no tax at all.
	RegimeExempt TaxRegime = "exempt"
)

// ExportFormat is the requested encoding of the invoice register export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)
