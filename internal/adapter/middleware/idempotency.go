package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"resto-pos-backend/internal/infrastructure/logging"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// the handler must finish within this, or the claim expires
	pendingTTL   = 60 * time.Second
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second

	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	HeaderReplayed  = "Idempotent-Replayed"
)

// teeWriter copies the response body while passing it through.
type teeWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func errJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware keys mutating requests by method, URL path, actor and Ax-Request-Id.
// A repeated request replays the stored response, the same id with another body is a 409,
// and 5xx responses are dropped so the client can retry with the same id.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) echo.MiddlewareFunc {
	store := replayStore{rdb: rdb, pending: pendingTTL, retain: ttl}
	logFail := func(step, key string, err error) {
		logging.LogError(logger, "middleware", "IdempotencyMiddleware", step, key, err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !mutating(req.Method) {
				return next(c)
			}
			meta, err := readMeta(req, nowUTC())
			if err != nil {
				return errJSON(c, http.StatusBadRequest, err.Error())
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)
			// the concrete path, so :date and :close_id are part of the key
			key := buildKey(req.Method, req.URL.Path, meta.actor, meta.id)

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			claimed, err := store.claim(ctx, key, replayEntry{
				InProgress:  true,
				BodySHA256:  hash,
				RequestID:   meta.id,
				RequestAtMS: meta.at.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				logFail("claim", key, err)
				return errJSON(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !claimed {
				prev, err := store.load(ctx, key)
				if err != nil {
					logFail("load", key, err)
				}
				switch {
				case prev.BodySHA256 != "" && prev.BodySHA256 != hash:
					return errJSON(c, http.StatusConflict, HeaderRequestID+" reused with different body")
				case prev.replayable():
					ct := prev.ContentType
					if ct == "" {
						ct = echo.MIMEApplicationJSONCharsetUTF8
					}
					c.Response().Header().Set(HeaderReplayed, "true")
					return c.Blob(prev.Code, ct, prev.Body)
				}
				return errJSON(c, http.StatusConflict, "request is already in progress")
			}

			tee := &teeWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = tee
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may be gone by now
			sctx, scancel := context.WithTimeout(context.Background(), storeTimeout)
			defer scancel()
			if tee.code >= http.StatusInternalServerError {
				if err := store.release(sctx, key); err != nil {
					logFail("release", key, err)
				}
				return nil
			}
			err = store.commit(sctx, key, replayEntry{
				Code:        tee.code,
				ContentType: tee.Header().Get(echo.HeaderContentType),
				Body:        tee.buf.Bytes(),
				BodySHA256:  hash,
				RequestID:   meta.id,
				RequestAtMS: meta.at.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				logFail("commit", key, err)
			}
			return nil
		}
	}
}
