package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// ErrTaskMessageEmpty - у задачи рассылки нет текста сообщения
	ErrTaskMessageEmpty = &DomainError{
		Code:    "TASK_MESSAGE_EMPTY",
		Message: "mailing task must have a message",
	}

	// ErrTaskFilterMissing - у задачи рассылки не задан фильтр по статусу
	ErrTaskFilterMissing = &DomainError{
		Code:    "TASK_FILTER_MISSING",
		Message: "mailing task must have a filter status",
	}

	// ErrUnknownMailingType - неизвестный тип рассылки
	ErrUnknownMailingType = &DomainError{
		Code:    "UNKNOWN_MAILING_TYPE",
		Message: "unknown mailing type",
	}

	// ErrTaskNotClaimed - задача не захвачена этим диспетчером
	ErrTaskNotClaimed = &DomainError{
		Code:    "TASK_NOT_CLAIMED",
		Message: "mailing task is not claimed by this dispatcher",
	}

	// ErrTrackFull - в кейсе не осталось свободных мест
	ErrTrackFull = &DomainError{
		Code:    "TRACK_FULL",
		Message: "track has no remaining slots",
	}

	// ErrTeamNotInSelection - команда не находится в окне выбора кейса
	ErrTeamNotInSelection = &DomainError{
		Code:    "TEAM_NOT_IN_SELECTION",
		Message: "team is not in case selection",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
	}
}
