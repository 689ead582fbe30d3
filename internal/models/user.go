package models

import "time"

// User представляет зарегистрированный аккаунт
type User struct {
	CreatedAt   time.Time `json:"created_at"`   // время регистрации
	Username    string    `json:"username"`     // уникальный username
	DisplayName string    `json:"display_name"` // отображаемое имя
	Password    string    `json:"-"`            // bcrypt хеш пароля, никогда не сериализуется
	Image       string    `json:"image"`        // имя сохраненного изображения профиля, пусто если нет
	ID          int64     `json:"id"`           // идентификатор, назначается хранилищем
}

// HasImage сообщает, есть ли у пользователя изображение профиля
func (u *User) HasImage() bool {
	return u.Image != ""
}
