package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mustakimov/vkbot/internal/config"
	"github.com/mustakimov/vkbot/internal/db"
	"github.com/mustakimov/vkbot/internal/logging"
	"github.com/mustakimov/vkbot/internal/mq"
	"github.com/mustakimov/vkbot/internal/repository/postgres"
	"github.com/mustakimov/vkbot/internal/scheduler"
	"github.com/mustakimov/vkbot/internal/service"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Log)

	database := db.MustLoad(cfg)
	log.Info().Msg("successfully connected to database")
	defer database.Close()

	broker, err := mq.NewClient(cfg.AMQP.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to broker")
	}
	defer broker.Close()

	if err := broker.DeclareTopology(cfg.Messaging); err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue topology")
	}
	log.Info().Msg("queue topology declared")

	taskRepo := postgres.NewMailingTaskRepository(database)
	teamRepo := postgres.NewTeamRepository(database)
	trackRepo := postgres.NewTrackRepository(database)
	participantRepo := postgres.NewParticipantRepository(database)

	publisher := mq.NewPublisher(broker, cfg.Messaging.Bot.MainQueue)
	messagingService := service.NewMessagingService(taskRepo, teamRepo, trackRepo, publisher, log)
	conversationService := service.NewConversationService(participantRepo, teamRepo, trackRepo, messagingService, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := mq.NewConsumer(broker, cfg.Messaging.Human.MainQueue, cfg.Messaging.MaxDeliveries,
		conversationService.HandleReply, log)
	if err := consumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start inbound consumer")
	}

	mailingScheduler := scheduler.New(cfg.Scheduler, messagingService, log)
	if err := mailingScheduler.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start mailing scheduler")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	cancel()
	mailingScheduler.Stop()
}
