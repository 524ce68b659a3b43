package dto

import (
	"notegrid/internal/gateway/app/notes"
)

// ContentRequest содержит текст заметки.
type ContentRequest struct {
	Content string `json:"content"`
}

// DraftRequest содержит новый черновик.
type DraftRequest struct {
	Draft string `json:"draft"`
}

// NotesResponse - снимок сессии и ошибка последнего вызова, если он не удался.
type NotesResponse struct {
	notes.Snapshot
	Error *notes.OperationError `json:"error,omitempty"`
}
