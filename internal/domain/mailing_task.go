package domain

import "time"

type MailingStatus string

const (
	MailingStatusAdded MailingStatus = "ADDED"
	// MailingStatusProcessing - задача захвачена диспетчером, другие тики её не берут
	MailingStatusProcessing MailingStatus = "PROCESSING"
	MailingStatusSent       MailingStatus = "SENT"
	// MailingStatusFailed - терминальный статус для некорректных задач
	MailingStatusFailed MailingStatus = "FAILED"
)

type MailingType string

const (
	MailingTypeStandard   MailingType = "STANDARD"
	MailingTypeSelectCase MailingType = "SELECT_CASE"
)

type MailingTask struct {
	ID            int64
	PlannedTime   time.Time
	FilterStatus  *TeamStatus
	FilterTrackID *int64
	Status        MailingStatus
	Type          MailingType
	Message       string
}

func (t MailingTask) Same(other MailingTask) bool {
	return t.ID != 0 && other.ID != 0 && t.ID == other.ID
}

// Validate проверяет, что задача пригодна к отправке.
// Нарушение - фатальная ошибка для задачи, без ретраев.
func (t MailingTask) Validate() error {
	if t.Message == "" {
		return ErrTaskMessageEmpty
	}
	if t.FilterStatus == nil {
		return ErrTaskFilterMissing
	}
	switch t.Type {
	case MailingTypeStandard, MailingTypeSelectCase:
		return nil
	default:
		return ErrUnknownMailingType
	}
}
