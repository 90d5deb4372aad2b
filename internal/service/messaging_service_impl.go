package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mustakimov/vkbot/internal/domain"
	"github.com/mustakimov/vkbot/internal/mq"
	"github.com/mustakimov/vkbot/internal/repository"
	"github.com/rs/zerolog"
)

type messagingService struct {
	taskRepo  repository.MailingTaskRepository
	teamRepo  repository.TeamRepository
	trackRepo repository.TrackRepository
	publisher EnvelopePublisher
	log       zerolog.Logger
}

// NewMessagingService создает диспетчер рассылок
func NewMessagingService(
	taskRepo repository.MailingTaskRepository,
	teamRepo repository.TeamRepository,
	trackRepo repository.TrackRepository,
	publisher EnvelopePublisher,
	log zerolog.Logger,
) MessagingService {
	return &messagingService{
		taskRepo:  taskRepo,
		teamRepo:  teamRepo,
		trackRepo: trackRepo,
		publisher: publisher,
		log:       log.With().Str("component", "messaging").Logger(),
	}
}

func (s *messagingService) DispatchPending(ctx context.Context, now time.Time) error {
	tasks, err := s.taskRepo.ClaimDue(ctx, now)
	if err != nil {
		return fmt.Errorf("claim due tasks: %w", err)
	}

	for _, task := range tasks {
		if err := s.ProcessTask(ctx, task); err != nil {
			s.settleFailed(ctx, task, err)
		}
	}
	return nil
}

// settleFailed разводит ошибки по таксономии: доменные ошибки фатальны для
// задачи и переводят её в FAILED, транспортные возвращают задачу в ADDED,
// и следующий тик попробует снова
func (s *messagingService) settleFailed(ctx context.Context, task *domain.MailingTask, taskErr error) {
	var domainErr *domain.DomainError
	if errors.As(taskErr, &domainErr) {
		s.log.Error().Err(taskErr).Int64("task", task.ID).Msg("task failed permanently")
		if err := s.taskRepo.MarkFailed(ctx, task.ID); err != nil {
			s.log.Error().Err(err).Int64("task", task.ID).Msg("mark failed")
		}
		return
	}

	s.log.Warn().Err(taskErr).Int64("task", task.ID).Msg("transport error, task will be retried")
	if err := s.taskRepo.Release(ctx, task.ID); err != nil {
		s.log.Error().Err(err).Int64("task", task.ID).Msg("release task")
	}
}

func (s *messagingService) ProcessTask(ctx context.Context, task *domain.MailingTask) error {
	s.log.Info().Int64("task", task.ID).Str("type", string(task.Type)).Msg("send messages based on task")

	if err := task.Validate(); err != nil {
		return err
	}

	teams, err := s.resolveRecipients(ctx, task)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}

	switch task.Type {
	case domain.MailingTypeStandard:
		if err := s.sendStandard(ctx, task, teams); err != nil {
			return err
		}
	case domain.MailingTypeSelectCase:
		if err := s.sendCaseSelection(ctx, task, teams); err != nil {
			return err
		}
	}

	if err := s.taskRepo.MarkSent(ctx, task.ID); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}

	s.log.Info().Int64("task", task.ID).Msg("messages sent based on task")
	return nil
}

func (s *messagingService) resolveRecipients(ctx context.Context, task *domain.MailingTask) ([]*domain.Team, error) {
	if task.FilterTrackID != nil {
		return s.teamRepo.GetByStatusAndTrack(ctx, *task.FilterStatus, *task.FilterTrackID)
	}
	return s.teamRepo.GetByStatus(ctx, *task.FilterStatus)
}

// sendStandard публикует по одному конверту на каждого участника с аккаунтом
func (s *messagingService) sendStandard(ctx context.Context, task *domain.MailingTask, teams []*domain.Team) error {
	for _, team := range teams {
		for _, vkID := range team.VkIDs() {
			msg := mq.MailingMessage{
				Seed:    task.ID,
				VkIDs:   []int64{vkID},
				Message: mq.Message{Text: task.Message},
			}
			if err := s.publisher.Publish(ctx, msg); err != nil {
				return fmt.Errorf("publish to %d: %w", vkID, err)
			}
		}
	}
	return nil
}

// sendCaseSelection публикует по одному конверту на команду с клавиатурой
// из всех кейсов и переводит команду в окно выбора
func (s *messagingService) sendCaseSelection(ctx context.Context, task *domain.MailingTask, teams []*domain.Team) error {
	tracks, err := s.trackRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load tracks: %w", err)
	}

	keyboard := caseSelectionKeyboard(tracks)
	for _, team := range teams {
		msg := mq.MailingMessage{
			Seed:  task.ID,
			VkIDs: team.VkIDs(),
			Message: mq.Message{
				Text:     task.Message,
				Keyboard: keyboard,
			},
		}
		if err := s.publisher.Publish(ctx, msg); err != nil {
			return fmt.Errorf("publish to team %d: %w", team.ID, err)
		}
		if err := s.teamRepo.UpdateStatus(ctx, team.ID, domain.TeamStatusCaseSelection); err != nil {
			return fmt.Errorf("move team %d to case selection: %w", team.ID, err)
		}
	}
	return nil
}

func caseSelectionKeyboard(tracks []*domain.Track) *mq.Keyboard {
	items := make([]mq.KeyboardButton, 0, len(tracks))
	for _, track := range tracks {
		items = append(items, mq.KeyboardButton{
			Kind:    mq.ButtonText,
			Label:   track.Title,
			Payload: "",
			Color:   mq.ColorPositive,
		})
	}
	return &mq.Keyboard{
		Type:    mq.KeyboardInline,
		OneTime: false,
		Items:   items,
	}
}

func (s *messagingService) SendReply(ctx context.Context, seed int64, text string, vkID int64) error {
	msg := mq.MailingMessage{
		Seed:    seed,
		VkIDs:   []int64{vkID},
		Message: mq.Message{Text: text},
	}
	return s.publisher.Publish(ctx, msg)
}
