package repository

import (
	"context"

	"github.com/mustakimov/vkbot/internal/domain"
)

type TrackRepository interface {
	GetAll(ctx context.Context) ([]*domain.Track, error)
	// GetByTitle ищет кейс по точному совпадению названия
	GetByTitle(ctx context.Context, title string) (*domain.Track, error)
}
