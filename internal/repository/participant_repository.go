package repository

import (
	"context"

	"github.com/mustakimov/vkbot/internal/domain"
)

type ParticipantRepository interface {
	GetByVkID(ctx context.Context, vkID int64) (*domain.Participant, error)
}
