package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"

	infraRepo "github.com/sangkips/backoffice-api/internal/infrastructure/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/pkg/storeapi"
)

// CallerContextKey is the Gin context key holding the caller fingerprint
const CallerContextKey = "caller"

// CallerMiddleware identifies the caller for drafts, idempotency and rate
// limiting. The bearer token is not validated here; it is forwarded to the
// store API, which owns authentication. Callers without a token are
// identified by address.
func CallerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var caller string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				response.Unauthorized(c, "Invalid authorization header format")
				c.Abort()
				return
			}
			ctx = storeapi.WithToken(ctx, parts[1])
			caller = fingerprint("token:" + parts[1])
		} else {
			caller = fingerprint("ip:" + c.ClientIP())
		}

		// Set caller in Gin context (for middleware) and request context (for services/repositories)
		c.Set(CallerContextKey, caller)
		c.Request = c.Request.WithContext(infraRepo.WithCaller(ctx, caller))

		c.Next()
	}
}

// GetCaller returns the caller fingerprint set by CallerMiddleware
func GetCaller(c *gin.Context) string {
	return c.GetString(CallerContextKey)
}

func fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
