package repository

import (
	"context"
	"time"

	"github.com/mustakimov/vkbot/internal/domain"
)

type MailingTaskRepository interface {
	// ClaimDue атомарно захватывает все назревшие задачи (ADDED -> PROCESSING).
	// Конкурирующие тики не получат одну задачу дважды.
	ClaimDue(ctx context.Context, now time.Time) ([]*domain.MailingTask, error)
	// MarkSent - точка фиксации отправки (PROCESSING -> SENT)
	MarkSent(ctx context.Context, id int64) error
	// MarkFailed - терминальный статус для некорректных задач
	MarkFailed(ctx context.Context, id int64) error
	// Release возвращает задачу в очередь после транспортной ошибки (PROCESSING -> ADDED)
	Release(ctx context.Context, id int64) error
}
