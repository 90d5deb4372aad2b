package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/mustakimov/vkbot/internal/domain"
	"github.com/mustakimov/vkbot/internal/repository"
	"github.com/rs/zerolog"
)

// Тексты ответов пользователю
const (
	ReplyAlreadySelected = "Ой, ты уже выбрал кейс — с тебя хватит \U0001F631"
	ReplyUnknownCase     = "Мы не нашли такой кейс… Повтори, пожалуйста"
	ReplyCaseFull        = "Ой, а этот кейс уже переполнен… Попробуй другие"
	ReplyCaseSelected    = "Классный кейс! Мы запомнили ;)"
)

type conversationService struct {
	participantRepo repository.ParticipantRepository
	teamRepo        repository.TeamRepository
	trackRepo       repository.TrackRepository
	messaging       MessagingService
	seed            func() int64
	log             zerolog.Logger
}

// NewConversationService создает обработчик ответов пользователей
func NewConversationService(
	participantRepo repository.ParticipantRepository,
	teamRepo repository.TeamRepository,
	trackRepo repository.TrackRepository,
	messaging MessagingService,
	log zerolog.Logger,
) ConversationService {
	return &conversationService{
		participantRepo: participantRepo,
		teamRepo:        teamRepo,
		trackRepo:       trackRepo,
		messaging:       messaging,
		seed:            rand.Int64,
		log:             log.With().Str("component", "conversation").Logger(),
	}
}

func (s *conversationService) HandleReply(ctx context.Context, text string, senderID int64) error {
	participant, err := s.participantRepo.GetByVkID(ctx, senderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if participant.TeamID == nil {
		return nil
	}

	team, err := s.teamRepo.GetByID(ctx, *participant.TeamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	// Повторная попытка выбора после того, как кейс уже закреплен
	if team.Status == domain.TeamStatusCaseSelected {
		_, err := s.trackRepo.GetByTitle(ctx, text)
		if err == nil {
			return s.messaging.SendReply(ctx, s.seed(), ReplyAlreadySelected, senderID)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}

	// Команда вне окна выбора молча игнорируется
	if team.Status != domain.TeamStatusCaseSelection {
		return nil
	}

	track, err := s.trackRepo.GetByTitle(ctx, text)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.messaging.SendReply(ctx, s.seed(), ReplyUnknownCase, senderID)
		}
		return err
	}

	err = s.teamRepo.AssignTrack(ctx, team.ID, track.ID)
	switch {
	case errors.Is(err, domain.ErrTrackFull):
		return s.messaging.SendReply(ctx, s.seed(), ReplyCaseFull, senderID)
	case errors.Is(err, domain.ErrTeamNotInSelection):
		// Кто-то из команды успел раньше между чтением статуса и блокировкой
		return nil
	case err != nil:
		return err
	}

	s.log.Info().Int64("team", team.ID).Int64("track", track.ID).Msg("team selected case")
	return s.messaging.SendReply(ctx, s.seed(), ReplyCaseSelected, senderID)
}
