package request

// PrintRequest selects the language of a printed bill. When empty the
// Accept-Language header and then the configured default are used.
type PrintRequest struct {
	Lang string `form:"lang" json:"lang" binding:"omitempty,oneof=en ar"`
	// AutoPrint defaults to true; autoprint=false returns the page without
	// opening the print dialog.
	AutoPrint *bool `form:"autoprint" json:"autoprint"`
}

// ShouldAutoPrint reports whether the page should print itself on load
func (r *PrintRequest) ShouldAutoPrint() bool {
	return r.AutoPrint == nil || *r.AutoPrint
}
