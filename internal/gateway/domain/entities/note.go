// Package entities содержит сущности gateway.
package entities

import "time"

// Note - заметка пользователя.
// ID назначается хранилищем при создании и не меняется.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
