package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

// buildKey scopes a request id to the concrete URL path and the actor that sent it.
func buildKey(method, path, actor, requestID string) string {
	return "idemp:pos:" + strings.ToLower(method) + ":" + path + ":" + strings.ToLower(actor) + ":" + requestID
}

// validReqID accepts a lowercase RFC 4122 uuid (v1-v5) or a 32 char lowercase hex token.
func validReqID(id string) bool {
	if id == "" || id != strings.ToLower(id) {
		return false
	}
	switch len(id) {
	case 32:
		_, err := hex.DecodeString(id)
		return err == nil
	case 36:
		u, err := uuid.Parse(id)
		return err == nil && u.Variant() == uuid.RFC4122 && u.Version() >= 1 && u.Version() <= 5
	}
	return false
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339 with a zone.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
	}
	return t.UTC(), nil
}

type requestMeta struct {
	id    string
	at    time.Time
	actor string
}

// readMeta checks the idempotency headers against now. Error texts go back to the client.
func readMeta(req *http.Request, now time.Time) (requestMeta, error) {
	id := strings.TrimSpace(req.Header.Get(HeaderRequestID))
	if id == "" {
		return requestMeta{}, errors.New("missing " + HeaderRequestID)
	}
	if !validReqID(id) {
		return requestMeta{}, errors.New("invalid " + HeaderRequestID + " format")
	}
	at, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
	if err != nil {
		return requestMeta{}, err
	}
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return requestMeta{}, errors.New(HeaderRequestAt + " too skewed")
	}
	actor, err := ActorFrom(req)
	if err != nil {
		return requestMeta{}, err
	}
	return requestMeta{id: id, at: at, actor: actor}, nil
}
