package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mustakimov/vkbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskRepo(t *testing.T) (*mailingTaskRepository, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewMailingTaskRepository(db), mock
}

var taskColumns = []string{"id", "planned_time", "filter_status", "status", "type", "message", "filter_track_id"}

// TestMailingTaskRepository_ClaimDue - захват назревших задач.
// Один UPDATE с FOR UPDATE SKIP LOCKED переводит ADDED -> PROCESSING,
// поэтому пересекающиеся тики не берут одну задачу дважды.
func TestMailingTaskRepository_ClaimDue(t *testing.T) {
	t.Run("назревшие задачи возвращаются со всеми полями", func(t *testing.T) {
		repo, mock := setupTaskRepo(t)

		now := time.Now()
		planned := now.Add(-time.Minute)
		rows := sqlmock.NewRows(taskColumns).
			AddRow(1, planned, "REGISTERED", "PROCESSING", "STANDARD", "привет", nil).
			AddRow(2, planned, "CASE_SELECTED", "PROCESSING", "SELECT_CASE", "выбирайте", 9)
		mock.ExpectQuery("UPDATE mailing_task").
			WithArgs(now).
			WillReturnRows(rows)

		tasks, err := repo.ClaimDue(context.Background(), now)

		require.NoError(t, err)
		require.Len(t, tasks, 2)

		assert.Equal(t, int64(1), tasks[0].ID)
		require.NotNil(t, tasks[0].FilterStatus)
		assert.Equal(t, domain.TeamStatusRegistered, *tasks[0].FilterStatus)
		assert.Nil(t, tasks[0].FilterTrackID)
		assert.Equal(t, domain.MailingTypeStandard, tasks[0].Type)

		require.NotNil(t, tasks[1].FilterTrackID)
		assert.Equal(t, int64(9), *tasks[1].FilterTrackID)
		assert.Equal(t, domain.MailingTypeSelectCase, tasks[1].Type)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("нет назревших задач - пустой результат без ошибки", func(t *testing.T) {
		repo, mock := setupTaskRepo(t)

		mock.ExpectQuery("UPDATE mailing_task").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(taskColumns))

		tasks, err := repo.ClaimDue(context.Background(), time.Now())

		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("задача с filter_status = NULL возвращается как есть, валидация дальше", func(t *testing.T) {
		repo, mock := setupTaskRepo(t)

		rows := sqlmock.NewRows(taskColumns).
			AddRow(3, time.Now(), nil, "PROCESSING", "STANDARD", "без фильтра", nil)
		mock.ExpectQuery("UPDATE mailing_task").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)

		tasks, err := repo.ClaimDue(context.Background(), time.Now())

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Nil(t, tasks[0].FilterStatus)
	})
}

func TestMailingTaskRepository_Transitions(t *testing.T) {
	t.Run("MarkSent фиксирует отправку", func(t *testing.T) {
		repo, mock := setupTaskRepo(t)

		mock.ExpectExec("UPDATE mailing_task").
			WithArgs(int64(1), domain.MailingStatusSent).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkSent(context.Background(), 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("compare-and-set: переход незахваченной задачи - ошибка", func(t *testing.T) {
		repo, mock := setupTaskRepo(t)

		mock.ExpectExec("UPDATE mailing_task").
			WithArgs(int64(1), domain.MailingStatusSent).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkSent(context.Background(), 1)
		assert.ErrorIs(t, err, domain.ErrTaskNotClaimed)
	})

	t.Run("MarkFailed переводит некорректную задачу в терминальный статус", func(t *testing.T) {
		repo, mock := setupTaskRepo(t)

		mock.ExpectExec("UPDATE mailing_task").
			WithArgs(int64(2), domain.MailingStatusFailed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkFailed(context.Background(), 2))
	})

	t.Run("Release возвращает задачу в ADDED после транспортной ошибки", func(t *testing.T) {
		repo, mock := setupTaskRepo(t)

		mock.ExpectExec("UPDATE mailing_task").
			WithArgs(int64(3), domain.MailingStatusAdded).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Release(context.Background(), 3))
	})
}
