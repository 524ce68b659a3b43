package services

import (
	"notegrid/internal/gateway/app/notes"
)

// NoteSessions хранит состояние заметок каждой открытой сессии.
type NoteSessions interface {
	Open(sessionID, userID string) *notes.Session
	Ensure(sessionID, userID string) *notes.Session
	Close(sessionID string)
}
