//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/mustakimov/vkbot/internal/domain"
	"github.com/mustakimov/vkbot/internal/repository/postgres"
	"github.com/mustakimov/vkbot/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardMailingDispatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Команда REGISTERED с двумя участниками, у одного нет аккаунта VK
	execSQL(t, db, `INSERT INTO team (id, title, status) VALUES (1, 'Alpha', 'REGISTERED')`)
	execSQL(t, db, `INSERT INTO participant (vk_id, full_name, team_id) VALUES (111, 'Иван', 1)`)
	execSQL(t, db, `INSERT INTO participant (vk_id, full_name, team_id) VALUES (NULL, 'Пётр', 1)`)
	execSQL(t, db, `INSERT INTO mailing_task (id, planned_time, filter_status, type, message)
		VALUES (10, now() - interval '1 minute', 'REGISTERED', 'STANDARD', 'Привет, команды!')`)

	pub := &recordingPublisher{}
	messaging := service.NewMessagingService(
		postgres.NewMailingTaskRepository(db),
		postgres.NewTeamRepository(db),
		postgres.NewTrackRepository(db),
		pub,
		zerolog.Nop(),
	)

	require.NoError(t, messaging.DispatchPending(ctx, time.Now()))

	// Конверт только участнику с аккаунтом
	msgs := pub.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []int64{111}, msgs[0].VkIDs)
	assert.Equal(t, "Привет, команды!", msgs[0].Message.Text)
	assert.Nil(t, msgs[0].Message.Keyboard)
	assert.Equal(t, int64(10), msgs[0].Seed)

	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM mailing_task WHERE id = 10`).Scan(&status))
	assert.Equal(t, "SENT", status)

	// Повторный тик не находит задачу: захват одноразовый
	require.NoError(t, messaging.DispatchPending(ctx, time.Now()))
	assert.Len(t, pub.Messages(), 1)
}

func TestCaseSelectionDispatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	execSQL(t, db, `INSERT INTO track (id, title, max_teams) VALUES (1, 'Track A', 2), (2, 'Track B', 3)`)
	execSQL(t, db, `INSERT INTO team (id, title, status) VALUES (1, 'Alpha', 'REGISTERED'), (2, 'Beta', 'REGISTERED')`)
	execSQL(t, db, `INSERT INTO participant (vk_id, full_name, team_id) VALUES (111, 'Иван', 1)`)
	execSQL(t, db, `INSERT INTO participant (vk_id, full_name, team_id) VALUES (222, 'Мария', 2)`)
	execSQL(t, db, `INSERT INTO mailing_task (id, planned_time, filter_status, type, message)
		VALUES (10, now() - interval '1 minute', 'REGISTERED', 'SELECT_CASE', 'Выбирайте кейс!')`)

	pub := &recordingPublisher{}
	messaging := service.NewMessagingService(
		postgres.NewMailingTaskRepository(db),
		postgres.NewTeamRepository(db),
		postgres.NewTrackRepository(db),
		pub,
		zerolog.Nop(),
	)

	require.NoError(t, messaging.DispatchPending(ctx, time.Now()))

	// Конверт на команду, клавиатура со всеми кейсами
	msgs := pub.Messages()
	require.Len(t, msgs, 2)
	for _, msg := range msgs {
		require.NotNil(t, msg.Message.Keyboard)
		require.Len(t, msg.Message.Keyboard.Items, 2)
		assert.Equal(t, "Track A", msg.Message.Keyboard.Items[0].Label)
		assert.Equal(t, "Track B", msg.Message.Keyboard.Items[1].Label)
	}

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM team WHERE status = 'CASE_SELECTION'`).Scan(&count))
	assert.Equal(t, 2, count, "обе команды должны перейти в окно выбора")
}

func TestInvalidTaskMarkedFailed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Задача без текста не пригодна к отправке
	execSQL(t, db, `INSERT INTO mailing_task (id, planned_time, filter_status, type, message)
		VALUES (10, now() - interval '1 minute', 'REGISTERED', 'STANDARD', '')`)

	pub := &recordingPublisher{}
	messaging := service.NewMessagingService(
		postgres.NewMailingTaskRepository(db),
		postgres.NewTeamRepository(db),
		postgres.NewTrackRepository(db),
		pub,
		zerolog.Nop(),
	)

	require.NoError(t, messaging.DispatchPending(ctx, time.Now()))

	assert.Empty(t, pub.Messages())

	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM mailing_task WHERE id = 10`).Scan(&status))
	assert.Equal(t, string(domain.MailingStatusFailed), status)

	// Повторный тик не трогает терминальную задачу
	require.NoError(t, messaging.DispatchPending(ctx, time.Now()))
	require.NoError(t, db.QueryRow(`SELECT status FROM mailing_task WHERE id = 10`).Scan(&status))
	assert.Equal(t, string(domain.MailingStatusFailed), status)
}
