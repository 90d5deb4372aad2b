package scheduler

import (
	"context"
	"time"

	"github.com/mustakimov/vkbot/internal/config"
	"github.com/mustakimov/vkbot/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Service гоняет диспетчер рассылок по cron-расписанию с точностью
// до секунды. Каждое срабатывание cron выполняет в своей горутине,
// поэтому тики могут пересекаться; ClaimDue делает пересечение безопасным.
type Service struct {
	cron      *cron.Cron
	spec      string
	messaging service.MessagingService
	log       zerolog.Logger
}

func New(cfg config.SchedulerConfig, messaging service.MessagingService, log zerolog.Logger) *Service {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &Service{
		cron:      cron.New(cron.WithParser(parser)),
		spec:      cfg.Cron,
		messaging: messaging,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

func (s *Service) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.messaging.DispatchPending(ctx, time.Now()); err != nil {
			s.log.Error().Err(err).Msg("dispatch tick failed")
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("mailing scheduler started")
	return nil
}

// Stop останавливает расписание и дожидается завершения текущих тиков
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
}
