package session

import (
	"fmt"
	"strings"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session is a read-only copy of the controller's state. Token is "" when
// there is none.
type Session struct {
	Token           string
	IsAuthenticated bool
}

func (s Session) State() State {
	if s.IsAuthenticated {
		return Authenticated
	}
	return Unauthenticated
}

// Policy decides what a 401 on an ordinary data call does to the session.
type Policy string

const (
	// PolicyLogout ends the session when the server rejects its token.
	PolicyLogout Policy = "logout"
	// PolicyFailCall only fails the call; the session stays as it is.
	PolicyFailCall Policy = "fail-call"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyLogout, PolicyFailCall:
		return p, nil
	case "":
		return PolicyLogout, nil
	}
	return "", fmt.Errorf("unknown unauthorized policy %q (want %q or %q)", s, PolicyLogout, PolicyFailCall)
}
