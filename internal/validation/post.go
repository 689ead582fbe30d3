package validation

import (
	ozzo "github.com/go-ozzo/ozzo-validation"

	"github.com/iudanet/shareall/pkg/api"
)

// ValidatePost проверяет запрос на создание публикации
func ValidatePost(req api.PostRequest) FieldErrors {
	err := ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Content,
			ozzo.By(NotNull(MsgNull)),
			ozzo.By(SizeBetween(MinPostLen, MaxPostLen)),
		),
	)
	return toFieldErrors(err)
}
