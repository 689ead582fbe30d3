package api

// UserView представляет публичное представление пользователя
// Пароль не входит в представление ни при каких условиях
type UserView struct {
	Image       *string `json:"image"`       // имя изображения профиля, null если нет
	Username    string  `json:"username"`    // username
	DisplayName string  `json:"displayName"` // отображаемое имя
	ID          int64   `json:"id"`          // идентификатор пользователя
}

// UserUpdateRequest представляет запрос на обновление профиля
type UserUpdateRequest struct {
	DisplayName *string `json:"displayName"` // новое отображаемое имя, обязательно
	Image       *string `json:"image"`       // base64 PNG/JPEG, опционально
}

// Page представляет одну страницу постраничной выборки
type Page[T any] struct {
	Content          []T   `json:"content"`          // элементы страницы
	NumberOfElements int   `json:"numberOfElements"` // количество элементов на этой странице
	TotalElements    int64 `json:"totalElements"`    // общее количество элементов
	TotalPages       int   `json:"totalPages"`       // общее количество страниц
	Number           int   `json:"number"`           // номер страницы, с 0
	Size             int   `json:"size"`             // размер страницы
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	HasPrevious      bool  `json:"hasPrevious"`
	HasNext          bool  `json:"hasNext"`
}
