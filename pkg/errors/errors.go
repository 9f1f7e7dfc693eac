package errors

import "fmt"

var (
	// Хранилища
	ErrPrimaryStoreUnavailable = fmt.Errorf("основное хранилище недоступно")
	ErrPersistenceFailure      = fmt.Errorf("не удалось сохранить обращение ни в одно из хранилищ")

	// Вложения и уведомления (нефатальные шаги конвейера)
	ErrAttachmentUpload     = fmt.Errorf("не удалось загрузить вложение")
	ErrNotificationDispatch = fmt.Errorf("не удалось отправить уведомление")

	// Общие
	ErrNotFound       = fmt.Errorf("запись не найдена")
	ErrBadRequest     = fmt.Errorf("неверный запрос")
	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")
)

// InvalidInputError - ошибка валидации входных данных клиента.
// Возникает строго до каких-либо побочных эффектов.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError - ошибка с привязанным HTTP-статусом для слоя контроллеров.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}
