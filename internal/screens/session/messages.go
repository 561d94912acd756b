package session

import (
	sess "github.com/abhisek/afrolingo/internal/session"
)

// sessionReadyMsg is sent once the session has been created.
type sessionReadyMsg struct {
	Session *sess.Session
	Err     error
}
