package repository

import (
	"context"

	"github.com/mustakimov/vkbot/internal/domain"
)

type TeamRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	// GetByStatus возвращает команды в заданном статусе вместе с участниками
	GetByStatus(ctx context.Context, status domain.TeamStatus) ([]*domain.Team, error)
	GetByStatusAndTrack(ctx context.Context, status domain.TeamStatus, trackID int64) ([]*domain.Team, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TeamStatus) error
	// AssignTrack закрепляет кейс за командой в одной транзакции:
	// строка команды блокируется, снимок занятости читается под блокировкой
	// строки кейса. Возвращает ErrTeamNotInSelection или ErrTrackFull.
	AssignTrack(ctx context.Context, teamID, trackID int64) error
}
