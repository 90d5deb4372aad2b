package service

import (
	"context"
	"time"

	"github.com/mustakimov/vkbot/internal/domain"
	"github.com/mustakimov/vkbot/internal/mq"
)

type MessagingService interface {
	// DispatchPending захватывает назревшие задачи и обрабатывает каждую
	// изолированно: ошибка одной задачи не мешает остальным
	DispatchPending(ctx context.Context, now time.Time) error
	// ProcessTask рассылает одну задачу и фиксирует отправку (точка коммита)
	ProcessTask(ctx context.Context, task *domain.MailingTask) error
	// SendReply отправляет одиночное сообщение одному получателю без клавиатуры
	SendReply(ctx context.Context, seed int64, text string, vkID int64) error
}

// EnvelopePublisher публикует конверт в исходящий канал бота
type EnvelopePublisher interface {
	Publish(ctx context.Context, msg mq.MailingMessage) error
}
