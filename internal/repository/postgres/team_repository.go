package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mustakimov/vkbot/internal/domain"
)

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *teamRepository {
	return &teamRepository{db: db}
}

const teamColumns = "id, title, status, comment, registrator_id, track_id"

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM team
		WHERE id = $1
	`

	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("team")
		}
		return nil, err
	}
	if err := r.loadParticipants(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (r *teamRepository) GetByStatus(ctx context.Context, status domain.TeamStatus) ([]*domain.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM team
		WHERE status = $1
		ORDER BY id
	`
	return r.queryTeams(ctx, query, status)
}

func (r *teamRepository) GetByStatusAndTrack(ctx context.Context, status domain.TeamStatus, trackID int64) ([]*domain.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM team
		WHERE status = $1 AND track_id = $2
		ORDER BY id
	`
	return r.queryTeams(ctx, query, status, trackID)
}

func (r *teamRepository) UpdateStatus(ctx context.Context, id int64, status domain.TeamStatus) error {
	query := `
		UPDATE team
		SET status = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("team")
	}
	return nil
}

// AssignTrack выполняет весь переход выбора кейса в одной транзакции.
// Строка команды блокируется первой, затем строка кейса; снимок занятости
// читается уже под блокировкой, поэтому два конкурирующих выбора
// сериализуются и последнее место не раздается дважды.
func (r *teamRepository) AssignTrack(ctx context.Context, teamID, trackID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status domain.TeamStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM team WHERE id = $1 FOR UPDATE`, teamID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("team")
		}
		return err
	}
	if status != domain.TeamStatusCaseSelection {
		return domain.ErrTeamNotInSelection
	}

	var lockedTrackID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM track WHERE id = $1 FOR UPDATE`, trackID).Scan(&lockedTrackID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("track")
		}
		return err
	}

	var remaining int64
	err = tx.QueryRowContext(ctx, `SELECT track_remaining FROM track_free WHERE track_id = $1`, trackID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFoundError("track capacity")
		}
		return err
	}
	if remaining <= 0 {
		return domain.ErrTrackFull
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE team SET track_id = $2, status = 'CASE_SELECTED' WHERE id = $1`,
		teamID, trackID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *teamRepository) queryTeams(ctx context.Context, query string, args ...any) ([]*domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, team := range teams {
		if err := r.loadParticipants(ctx, team); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *teamRepository) loadParticipants(ctx context.Context, team *domain.Team) error {
	query := `
		SELECT id, vk_id, full_name, age, employer, phone_number, team_id
		FROM participant
		WHERE team_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, team.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return err
		}
		team.Participants = append(team.Participants, *p)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (*domain.Team, error) {
	team := &domain.Team{}
	var comment sql.NullString
	var registratorID, trackID sql.NullInt64
	err := row.Scan(&team.ID, &team.Title, &team.Status, &comment, &registratorID, &trackID)
	if err != nil {
		return nil, err
	}
	team.Comment = comment.String
	if registratorID.Valid {
		team.RegistratorID = &registratorID.Int64
	}
	if trackID.Valid {
		team.TrackID = &trackID.Int64
	}
	return team, nil
}
