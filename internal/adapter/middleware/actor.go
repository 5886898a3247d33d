package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
)

// HeaderActor carries the username of the staff member performing a request.
const HeaderActor = "Ax-Actor"

var (
	ErrMissingActor = errors.New("missing " + HeaderActor)
	ErrInvalidActor = errors.New("invalid " + HeaderActor)
)

var reActor = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)

func ValidActor(s string) bool { return reActor.MatchString(s) }

// ActorFrom reads and checks the actor header of req.
func ActorFrom(req *http.Request) (string, error) {
	actor := strings.TrimSpace(req.Header.Get(HeaderActor))
	if actor == "" {
		return "", ErrMissingActor
	}
	if !ValidActor(actor) {
		return "", ErrInvalidActor
	}
	return actor, nil
}
