package service

import (
	"context"
	"time"

	"github.com/mustakimov/vkbot/internal/domain"
	"github.com/mustakimov/vkbot/internal/mq"
	"github.com/stretchr/testify/mock"
)

type MockMailingTaskRepository struct {
	mock.Mock
}

func (m *MockMailingTaskRepository) ClaimDue(ctx context.Context, now time.Time) ([]*domain.MailingTask, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MailingTask), args.Error(1)
}

func (m *MockMailingTaskRepository) MarkSent(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMailingTaskRepository) MarkFailed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMailingTaskRepository) Release(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByStatus(ctx context.Context, status domain.TeamStatus) ([]*domain.Team, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByStatusAndTrack(ctx context.Context, status domain.TeamStatus, trackID int64) ([]*domain.Team, error) {
	args := m.Called(ctx, status, trackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

func (m *MockTeamRepository) UpdateStatus(ctx context.Context, id int64, status domain.TeamStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTeamRepository) AssignTrack(ctx context.Context, teamID, trackID int64) error {
	args := m.Called(ctx, teamID, trackID)
	return args.Error(0)
}

type MockTrackRepository struct {
	mock.Mock
}

func (m *MockTrackRepository) GetAll(ctx context.Context) ([]*domain.Track, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Track), args.Error(1)
}

func (m *MockTrackRepository) GetByTitle(ctx context.Context, title string) (*domain.Track, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Track), args.Error(1)
}

type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) GetByVkID(ctx context.Context, vkID int64) (*domain.Participant, error) {
	args := m.Called(ctx, vkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

type MockEnvelopePublisher struct {
	mock.Mock
}

func (m *MockEnvelopePublisher) Publish(ctx context.Context, msg mq.MailingMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockMessagingService struct {
	mock.Mock
}

func (m *MockMessagingService) DispatchPending(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

func (m *MockMessagingService) ProcessTask(ctx context.Context, task *domain.MailingTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockMessagingService) SendReply(ctx context.Context, seed int64, text string, vkID int64) error {
	args := m.Called(ctx, seed, text, vkID)
	return args.Error(0)
}
