package models

import "time"

// Post представляет короткую текстовую публикацию
type Post struct {
	Timestamp time.Time `json:"timestamp"` // время создания, проставляется сервером
	Content   string    `json:"content"`   // текст публикации
	ID        int64     `json:"id"`        // идентификатор, назначается хранилищем
	UserID    int64     `json:"user_id"`   // автор публикации
}
