package api

// PostRequest представляет запрос на создание публикации
type PostRequest struct {
	Content *string `json:"content"` // текст публикации, 10-5000 символов
}

// PostView представляет созданную публикацию
type PostView struct {
	Content   string `json:"content"`   // текст публикации
	ID        int64  `json:"id"`        // идентификатор публикации
	Timestamp int64  `json:"timestamp"` // время создания, unix ms
	UserID    int64  `json:"userId"`    // автор
}
