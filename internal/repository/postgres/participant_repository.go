package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mustakimov/vkbot/internal/domain"
)

type participantRepository struct {
	db *sql.DB
}

func NewParticipantRepository(db *sql.DB) *participantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) GetByVkID(ctx context.Context, vkID int64) (*domain.Participant, error) {
	query := `
		SELECT id, vk_id, full_name, age, employer, phone_number, team_id
		FROM participant
		WHERE vk_id = $1
		LIMIT 1
	`

	p, err := scanParticipant(r.db.QueryRowContext(ctx, query, vkID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("participant")
		}
		return nil, err
	}
	return p, nil
}

func scanParticipant(row rowScanner) (*domain.Participant, error) {
	p := &domain.Participant{}
	var vkID, teamID sql.NullInt64
	var fullName, employer, phoneNumber sql.NullString
	var age sql.NullInt64
	err := row.Scan(&p.ID, &vkID, &fullName, &age, &employer, &phoneNumber, &teamID)
	if err != nil {
		return nil, err
	}
	if vkID.Valid {
		p.VkID = &vkID.Int64
	}
	p.FullName = fullName.String
	if age.Valid {
		a := int(age.Int64)
		p.Age = &a
	}
	p.Employer = employer.String
	p.PhoneNumber = phoneNumber.String
	if teamID.Valid {
		p.TeamID = &teamID.Int64
	}
	return p, nil
}
