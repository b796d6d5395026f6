package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/ledger"
)

// GetKind parses the :kind path parameter, writing a 400 when it is unknown
func GetKind(c *gin.Context) (ledger.Kind, bool) {
	kind, ok := ledger.ParseKind(c.Param("kind"))
	if !ok {
		response.BadRequest(c, "Unknown bill kind. Use customer_bills, trader_bills, wholesaler_orders or invoices")
		return "", false
	}
	return kind, true
}

// GetUUID parses a UUID path parameter, writing a 400 when it is malformed
func GetUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, writing a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// driftWarnings reports figures where the store disagrees with the
// recalculated ones
func driftWarnings(drift []string) []string {
	if len(drift) == 0 {
		return nil
	}
	return []string{"Store figures differ from the recalculated ones: " + strings.Join(drift, ", ")}
}

func overpaidWarnings(r ledger.Receipt) []string {
	if !r.Overpaid {
		return nil
	}
	return []string{"Payment exceeds the balance due by " + r.Excess.StringFixed(2)}
}
