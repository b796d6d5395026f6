package invoice

import (
	"html/template"
	"io"
)

const htmlSource = `<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "Segoe UI", Tahoma, Arial, sans-serif; margin: 24px; color: #111; }
  header { text-align: center; margin-bottom: 16px; }
  header h1 { margin: 0; font-size: 22px; }
  header p { margin: 2px 0; font-size: 13px; }
  h2 { font-size: 18px; text-align: {{.StartAlign}}; }
  table { width: 100%; border-collapse: collapse; margin: 12px 0; }
  th, td { padding: 6px 8px; border-bottom: 1px solid #ddd; text-align: {{.StartAlign}}; font-size: 13px; }
  .money { text-align: {{.EndAlign}}; white-space: nowrap; }
  .meta td { border: none; padding: 2px 8px; }
  .figures td { border: none; }
  .strong { font-weight: bold; }
  footer { text-align: center; margin-top: 24px; font-size: 12px; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<header>
  {{with .Store.Name}}<h1>{{.}}</h1>{{end}}
  {{with .Store.Address}}<p>{{.}}</p>{{end}}
  {{with .Store.Phone}}<p>{{.}}</p>{{end}}
  {{with .StoreTaxID.Value}}<p>{{$.StoreTaxID.Label}}: {{.}}</p>{{end}}
</header>
<h2>{{.Title}}</h2>
<table class="meta">
  {{range .Meta}}<tr><td class="strong">{{.Label}}</td><td>{{.Value}}</td></tr>
  {{end}}
</table>
{{if .Rows}}
<table class="items">
  <thead>
    <tr>
      <th>#</th>
      <th>{{.Columns.Item}}</th>
      <th class="money">{{.Columns.Quantity}}</th>
      <th class="money">{{.Columns.UnitPrice}}</th>
      {{if .ShowDiscount}}<th class="money">{{.Columns.Discount}}</th>{{end}}
      <th class="money">{{.Columns.Total}}</th>
    </tr>
  </thead>
  <tbody>
    {{range $i, $row := .Rows}}<tr>
      <td>{{inc $i}}</td>
      <td>{{$row.Name}}</td>
      <td class="money">{{$row.Quantity}}</td>
      <td class="money">{{$row.UnitPrice}}</td>
      {{if $.ShowDiscount}}<td class="money">{{$row.Discount}}</td>{{end}}
      <td class="money">{{$row.Total}}</td>
    </tr>
    {{end}}
  </tbody>
</table>
{{end}}
<table class="figures">
  {{range .Figures}}<tr{{if .Strong}} class="strong"{{end}}><td>{{.Label}}</td><td class="money">{{.Value}}</td></tr>
  {{end}}
  <tr><td>{{.Status.Label}}</td><td class="money">{{.Status.Value}}</td></tr>
</table>
{{with .Payments}}
<h2>{{.Title}}</h2>
<table class="payments">
  <thead><tr><th>{{.Date}}</th><th>{{.Method}}</th><th class="money">{{.Amount}}</th><th>{{.Notes}}</th></tr></thead>
  <tbody>
    {{range .Rows}}<tr><td>{{.Date}}</td><td>{{.Method}}</td><td class="money">{{.Amount}}</td><td>{{.Notes}}</td></tr>
    {{end}}
  </tbody>
</table>
{{end}}
{{with .Notes.Value}}<p><span class="strong">{{$.Notes.Label}}:</span> {{.}}</p>{{end}}
<footer>{{.Footer}}</footer>
{{if .AutoPrint}}<script>window.onload = function () { window.print(); };</script>{{end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("bill").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(htmlSource))

// WriteHTML writes the document as a standalone HTML page. When AutoPrint is
// set the page opens the print dialog as soon as it loads.
func (d *Document) WriteHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, d)
}
