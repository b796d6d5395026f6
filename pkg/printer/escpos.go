package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Document builds an ESC/POS byte stream for thermal printers.
//
// Widths are measured in runes so Arabic text lays out like Latin text. In
// right-to-left mode two-column lines are mirrored: the label sits on the
// right edge and the amount on the left.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (default 32 for 58mm, 48 for 80mm)
	rtl   bool
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width returns the print width in characters.
func (d *Document) Width() int {
	return d.width
}

// SetRTL switches two-column layout to right-to-left.
func (d *Document) SetRTL(on bool) *Document {
	d.rtl = on
	return d
}

// RTL reports whether the document lays out right-to-left.
func (d *Document) RTL() bool {
	return d.rtl
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// SelectCodePage sends ESC t n. Printers that render Arabic need the
// vendor's Arabic code page selected first.
func (d *Document) SelectCodePage(page byte) *Document {
	d.buf.Write([]byte{ESC, 't', page})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetStartAlign aligns text to the reading start: left, or right in RTL mode.
func (d *Document) SetStartAlign() *Document {
	if d.rtl {
		return d.SetAlign(AlignRight)
	}
	return d.SetAlign(AlignLeft)
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a label and an amount on the same line, pushed to opposite edges.
// Example: "Subtotal           ₪100.00"
func (d *Document) KeyValue(key, value string) *Document {
	return d.columns(key, value)
}

// ItemLine prints a receipt item line: qty x name, then the line total on the opposite edge.
// Example: "2x Widget              ₪20.00"
func (d *Document) ItemLine(qty int, name, total string) *Document {
	return d.columns(fmt.Sprintf("%dx %s", qty, name), total)
}

// columns writes label at the reading start and value at the reading end.
// An overlong label is truncated so the value is never pushed off the line.
func (d *Document) columns(label, value string) *Document {
	room := d.width - utf8.RuneCountInString(value) - 1
	if room < 1 {
		room = 1
	}
	label = truncate(label, room)
	spaces := d.width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}

	if d.rtl {
		d.buf.WriteString(value)
		d.buf.WriteString(strings.Repeat(" ", spaces))
		d.buf.WriteString(label)
	} else {
		d.buf.WriteString(label)
		d.buf.WriteString(strings.Repeat(" ", spaces))
		d.buf.WriteString(value)
	}
	d.buf.WriteByte(LF)
	return d
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}
