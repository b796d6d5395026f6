package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyPendingTTL bounds how long an unfinished request holds its
	// key, so a crashed request does not block retries for a full day
	IdempotencyPendingTTL = 2 * time.Minute
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	// Now defaults to time.Now
	Now func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key
// and rejects a duplicate that arrives while the first is still running.
// Requests without a key proceed normally.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return idempotency(config, false)
}

// IdempotencyRequired is a stricter version that requires an idempotency key.
// Payments use it so a retried submission never records twice.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return idempotency(config, true)
}

func idempotency(config IdempotencyConfig, required bool) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}
	log := slog.With("module", "idempotency")

	return func(c *gin.Context) {
		// Only apply to POST, PUT, PATCH methods
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			if required {
				response.BadRequest(c, "Idempotency-Key header is required for this request")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		caller := GetCaller(c)
		if caller == "" {
			response.Unauthorized(c, "Caller not identified")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Unable to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		requestHash := hashBody(body)

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.FullPath()
		started := now()

		// Claim the key before running the handler so a concurrent duplicate
		// sees it in progress instead of recording twice
		reserved, err := config.Repo.Reserve(ctx, &entity.IdempotencyKey{
			Key:         idempotencyKey,
			Caller:      caller,
			Endpoint:    endpoint,
			RequestHash: requestHash,
			ExpiresAt:   started.Add(IdempotencyPendingTTL),
		}, started)
		if err != nil {
			log.Error("failed to reserve idempotency key", "error", err)
			if required {
				response.InternalServerError(c, "Failed to check idempotency key")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !reserved {
			existing, err := config.Repo.GetByKey(ctx, idempotencyKey, caller)
			if err != nil {
				log.Error("failed to check idempotency key", "error", err)
				response.InternalServerError(c, "Failed to check idempotency key")
				c.Abort()
				return
			}
			switch {
			case existing == nil:
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
			case existing.RequestHash != "" && existing.RequestHash != requestHash:
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
			case existing.IsPending():
				response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
			default:
				c.Header("X-Idempotency-Replayed", "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			}
			c.Abort()
			return
		}

		// Capture the response
		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// The outcome is stored even if the client went away mid-request
		storeCtx := context.WithoutCancel(ctx)

		// Only keep successful responses (2xx status codes) so a rejected
		// request can be corrected and sent again with the same key
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			if err := config.Repo.Release(storeCtx, idempotencyKey, caller); err != nil {
				log.Error("failed to release idempotency key", "endpoint", endpoint, "error", err)
			}
			return
		}
		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			Caller:       caller,
			Endpoint:     endpoint,
			RequestHash:  requestHash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(storeCtx, ikey); err != nil {
			log.Error("failed to store idempotency key", "endpoint", endpoint, "error", err)
		}
	}
}

func hashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
