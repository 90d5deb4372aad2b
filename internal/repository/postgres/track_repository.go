package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mustakimov/vkbot/internal/domain"
)

type trackRepository struct {
	db *sql.DB
}

func NewTrackRepository(db *sql.DB) *trackRepository {
	return &trackRepository{db: db}
}

const trackQuery = `
	SELECT t.id, t.title, f.teams_count, f.track_remaining, f.track_max
	FROM track t
	LEFT JOIN track_free f ON f.track_id = t.id
`

func (r *trackRepository) GetAll(ctx context.Context) ([]*domain.Track, error) {
	rows, err := r.db.QueryContext(ctx, trackQuery+" ORDER BY t.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []*domain.Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// GetByTitle ищет кейс по точному совпадению названия: регистр и
// пробелы значимы, "track a" не найдет "Track A"
func (r *trackRepository) GetByTitle(ctx context.Context, title string) (*domain.Track, error) {
	track, err := scanTrack(r.db.QueryRowContext(ctx, trackQuery+" WHERE t.title = $1", title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("track")
		}
		return nil, err
	}
	return track, nil
}

func scanTrack(row rowScanner) (*domain.Track, error) {
	track := &domain.Track{}
	var count, remaining, max sql.NullInt64
	err := row.Scan(&track.ID, &track.Title, &count, &remaining, &max)
	if err != nil {
		return nil, err
	}
	if count.Valid || remaining.Valid || max.Valid {
		track.Free = &domain.TrackFree{
			TeamsCount: count.Int64,
			Remaining:  remaining.Int64,
			Max:        max.Int64,
		}
	}
	return track, nil
}
