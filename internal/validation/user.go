package validation

import (
	"encoding/base64"
	"errors"

	ozzo "github.com/go-ozzo/ozzo-validation"

	"github.com/iudanet/shareall/pkg/api"
)

// FieldErrors содержит ошибки валидации: имя поля -> сообщение
type FieldErrors map[string]string

// TypeDetector определяет MIME тип по содержимому
type TypeDetector func(data []byte) string

// AllowedImageTypes MIME типы, допустимые для изображения профиля
var AllowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// ValidateRegistration проверяет запрос на регистрацию
// Возвращает nil, если ошибок нет
func ValidateRegistration(req api.RegisterRequest) FieldErrors {
	err := ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Username,
			ozzo.By(NotNull(MsgUsernameNull)),
			ozzo.By(SizeBetween(MinUsernameLen, MaxUsernameLen)),
		),
		ozzo.Field(&req.DisplayName,
			ozzo.By(NotNull(MsgNull)),
			ozzo.By(SizeBetween(MinDisplayNameLen, MaxDisplayNameLen)),
		),
		ozzo.Field(&req.Password,
			ozzo.By(NotNull(MsgNull)),
			ozzo.By(SizeBetween(MinPasswordLen, MaxPasswordLen)),
			ozzo.By(PasswordStrength()),
		),
	)
	return toFieldErrors(err)
}

// ValidateUserUpdate проверяет запрос на обновление профиля
// Изображение проверяется по содержимому, а не по заявленному типу
func ValidateUserUpdate(req api.UserUpdateRequest, detect TypeDetector) FieldErrors {
	err := ozzo.ValidateStruct(&req,
		ozzo.Field(&req.DisplayName,
			ozzo.By(NotNull(MsgNull)),
			ozzo.By(SizeBetween(MinDisplayNameLen, MaxDisplayNameLen)),
		),
		ozzo.Field(&req.Image,
			ozzo.By(ProfileImage(detect)),
		),
	)
	return toFieldErrors(err)
}

// ProfileImage проверяет, что base64 содержимое является PNG или JPEG
// Отсутствующее изображение допустимо
func ProfileImage(detect TypeDetector) ozzo.RuleFunc {
	return func(value any) error {
		s, ok := stringValue(value)
		if !ok {
			return nil
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil || len(data) == 0 {
			return errors.New(MsgImageType)
		}
		if !AllowedImageTypes[detect(data)] {
			return errors.New(MsgImageType)
		}
		return nil
	}
}

// toFieldErrors преобразует ошибку ozzo в FieldErrors
func toFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}

	var errs ozzo.Errors
	if !errors.As(err, &errs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			out[field] = fieldErr.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
