package invoice

import (
	"github.com/sangkips/backoffice-api/pkg/printer"
)

// WriteESCPOS lays the document out on a thermal receipt.
func (d *Document) WriteESCPOS(p *printer.Document) {
	p.SetRTL(d.Dir == "rtl")

	p.SetAlign(printer.AlignCenter)
	if d.Store.Name != "" {
		p.SetBold(true).SetFontSize(printer.FontDouble).Text(d.Store.Name)
		p.SetFontSize(printer.FontNormal).SetBold(false)
	}
	for _, s := range []string{d.Store.Address, d.Store.Phone} {
		if s != "" {
			p.Text(s)
		}
	}
	if d.StoreTaxID.Value != "" {
		p.Text(d.StoreTaxID.Label + ": " + d.StoreTaxID.Value)
	}
	p.LineFeed().SetBold(true).Text(d.Title).SetBold(false)

	p.SetStartAlign()
	p.Separator('=')
	for _, f := range d.Meta {
		p.KeyValue(f.Label, f.Value)
	}

	if len(d.Rows) > 0 {
		p.Separator('-')
		for _, row := range d.Rows {
			p.ItemLine(row.Quantity, row.Name, row.Total)
			if d.ShowDiscount && row.Discount != "0%" {
				p.KeyValue("  "+itoa(row.Quantity)+" x "+row.UnitPrice, d.Columns.Discount+" "+row.Discount)
			}
		}
	}

	p.Separator('-')
	for _, f := range d.Figures {
		p.SetBold(f.Strong).KeyValue(f.Label, f.Value)
	}
	p.SetBold(false).KeyValue(d.Status.Label, d.Status.Value)

	if d.Payments != nil {
		p.Separator('-')
		p.SetBold(true).Text(d.Payments.Title).SetBold(false)
		for _, row := range d.Payments.Rows {
			p.KeyValue(row.Date+" "+row.Method, row.Amount)
		}
	}
	if d.Notes.Value != "" {
		p.Separator('-')
		p.Text(d.Notes.Label + ": " + d.Notes.Value)
	}

	p.Separator('=')
	p.SetAlign(printer.AlignCenter).Text(d.Footer)
	p.FeedLines(3).PartialCut()
}
