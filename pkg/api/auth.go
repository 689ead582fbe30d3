package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
// Поля - указатели, чтобы отличать отсутствующее поле от пустой строки
type RegisterRequest struct {
	Username    *string `json:"username"`    // уникальный username
	DisplayName *string `json:"displayName"` // отображаемое имя
	Password    *string `json:"password"`    // пароль в открытом виде, хешируется на сервере
}

// GenericResponse представляет ответ с простым сообщением
type GenericResponse struct {
	Message string `json:"message"` // сообщение о результате операции
}

// ErrorResponse представляет тело ответа для всех 4xx/5xx
type ErrorResponse struct {
	ValidationErrors map[string]string `json:"validationErrors,omitempty"` // ошибки по полям, только для 400
	Message          string            `json:"message"`                    // описание ошибки
	URL              string            `json:"url"`                        // путь запроса
	Timestamp        int64             `json:"timestamp"`                  // время ошибки, unix ms
	Status           int               `json:"status"`                     // HTTP статус
}
