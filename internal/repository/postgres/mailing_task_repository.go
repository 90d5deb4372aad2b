package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mustakimov/vkbot/internal/domain"
)

type mailingTaskRepository struct {
	db *sql.DB
}

func NewMailingTaskRepository(db *sql.DB) *mailingTaskRepository {
	return &mailingTaskRepository{db: db}
}

// ClaimDue захватывает назревшие задачи одним оператором.
// FOR UPDATE SKIP LOCKED не дает пересекающимся тикам взять одну задачу дважды.
func (r *mailingTaskRepository) ClaimDue(ctx context.Context, now time.Time) ([]*domain.MailingTask, error) {
	query := `
		UPDATE mailing_task
		SET status = 'PROCESSING'
		WHERE id IN (
			SELECT id FROM mailing_task
			WHERE planned_time <= $1 AND status = 'ADDED'
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, planned_time, filter_status, status, type, message, filter_track_id
	`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.MailingTask
	for rows.Next() {
		task := &domain.MailingTask{}
		var filterStatus sql.NullString
		var filterTrackID sql.NullInt64
		err := rows.Scan(
			&task.ID,
			&task.PlannedTime,
			&filterStatus,
			&task.Status,
			&task.Type,
			&task.Message,
			&filterTrackID,
		)
		if err != nil {
			return nil, err
		}
		if filterStatus.Valid {
			status := domain.TeamStatus(filterStatus.String)
			task.FilterStatus = &status
		}
		if filterTrackID.Valid {
			task.FilterTrackID = &filterTrackID.Int64
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *mailingTaskRepository) MarkSent(ctx context.Context, id int64) error {
	return r.transition(ctx, id, domain.MailingStatusSent)
}

func (r *mailingTaskRepository) MarkFailed(ctx context.Context, id int64) error {
	return r.transition(ctx, id, domain.MailingStatusFailed)
}

func (r *mailingTaskRepository) Release(ctx context.Context, id int64) error {
	return r.transition(ctx, id, domain.MailingStatusAdded)
}

// transition - compare-and-set из PROCESSING; нулевое число строк означает,
// что задача не была захвачена этим диспетчером
func (r *mailingTaskRepository) transition(ctx context.Context, id int64, to domain.MailingStatus) error {
	query := `
		UPDATE mailing_task
		SET status = $2
		WHERE id = $1 AND status = 'PROCESSING'
	`

	result, err := r.db.ExecContext(ctx, query, id, to)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotClaimed
	}
	return nil
}
