package repository

import "github.com/fastygo/taskspace/domain"

// SessionRepository holds at most one session for the lifetime of the process.
type SessionRepository interface {
	Current() (domain.Session, bool)
	Set(session domain.Session)
	Clear()
}
