// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Успешные ответы отдают
// доменные объекты как есть, ошибки и служебные сообщения — тело {"message": ...}.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// ErrorResponse — стандартное тело ошибки.
type ErrorResponse struct {
	Message string `json:"message" example:"invalid request body"`
}

// MessageResponse — тело успешного ответа без данных (например, после удаления).
type MessageResponse struct {
	Message string `json:"message" example:"trip deleted"`
}

// Error возвращает тело ошибки с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

// OK возвращает тело успешного ответа с переданным сообщением.
func OK(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// ValidationError формирует тело ошибки на основе ошибок валидации.
// Каждое нарушение превращается в человеко-читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{Message: strings.Join(errsMsgs, ", ")}
}
