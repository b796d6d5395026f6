package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/backoffice-api/internal/application/service"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/request"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/invoice"
)

// PrinterHandler handles printing HTTP requests.
type PrinterHandler struct {
	printService *service.PrintService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printService *service.PrintService) *PrinterHandler {
	return &PrinterHandler{printService: printService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	lang, ok := h.language(c)
	if !ok {
		return
	}

	doc, err := h.printService.TestPrint(c.Request.Context(), lang)
	if err != nil {
		// The rendered page is still useful when the printer is unreachable
		response.OK(c, "Test page rendered but printing failed", gin.H{"document": doc}, err.Error())
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"document": doc,
	})
}

// RenderBill returns a bill as a printable HTML page.
func (h *PrinterHandler) RenderBill(c *gin.Context) {
	kind, ok := GetKind(c)
	if !ok {
		return
	}
	var req request.PrintRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	doc, err := h.printService.RenderBill(c.Request.Context(), kind, c.Param("id"), h.resolve(c, req.Lang), req.ShouldAutoPrint())
	if err != nil {
		response.Error(c, err)
		return
	}
	writeHTML(c, doc)
}

// RenderDebt returns a debt statement as a printable HTML page.
func (h *PrinterHandler) RenderDebt(c *gin.Context) {
	var req request.PrintRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}

	doc, err := h.printService.RenderDebt(c.Request.Context(), c.Param("id"), h.resolve(c, req.Lang), req.ShouldAutoPrint())
	if err != nil {
		response.Error(c, err)
		return
	}
	writeHTML(c, doc)
}

// PrintBill prints a bill on the thermal printer.
func (h *PrinterHandler) PrintBill(c *gin.Context) {
	kind, ok := GetKind(c)
	if !ok {
		return
	}
	lang, ok := h.language(c)
	if !ok {
		return
	}

	doc, err := h.printService.PrintBill(c.Request.Context(), kind, c.Param("id"), lang)
	if err != nil {
		if doc != nil {
			response.OK(c, "Bill rendered but printing failed", gin.H{"document": doc}, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill printed successfully", gin.H{
		"document": doc,
	})
}

// language reads an optional JSON body or query selecting the language.
func (h *PrinterHandler) language(c *gin.Context) (invoice.Language, bool) {
	var req request.PrintRequest
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req) {
			return "", false
		}
	} else if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return "", false
	}
	return h.resolve(c, req.Lang), true
}

// resolve prefers the explicit language, then Accept-Language.
func (h *PrinterHandler) resolve(c *gin.Context, lang string) invoice.Language {
	if lang != "" {
		return invoice.Language(lang)
	}
	return h.printService.Language(c.GetHeader("Accept-Language"))
}

func writeHTML(c *gin.Context, doc *invoice.Document) {
	var buf bytes.Buffer
	if err := doc.WriteHTML(&buf); err != nil {
		response.InternalServerError(c, "Failed to render document")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
