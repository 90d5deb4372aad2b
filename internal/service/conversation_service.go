package service

import "context"

// ConversationService - конечный автомат выбора кейса.
// Вход - текст ответа пользователя и его платформенный id.
type ConversationService interface {
	HandleReply(ctx context.Context, text string, senderID int64) error
}
