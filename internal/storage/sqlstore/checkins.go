package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/recovr/internal/models"
	"github.com/julianstephens/recovr/internal/storage"
)

const checkInColumns = `id, date, morning_at, mood, craving, anxiety, sleep,
	evening_at, overall_day, challenges, gratitude, tomorrow_goal, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckIn(row rowScanner) (models.CheckIn, error) {
	var (
		c                    models.CheckIn
		morningAt, eveningAt sql.NullString
		mood, craving        sql.NullInt64
		anxiety, sleep       sql.NullInt64
		overallDay           sql.NullInt64
		challenges           string
		gratitude            string
		tomorrowGoal         string
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.Date, &morningAt, &mood, &craving, &anxiety, &sleep,
		&eveningAt, &overallDay, &challenges, &gratitude, &tomorrowGoal, &createdAt, &updatedAt); err != nil {
		return models.CheckIn{}, err
	}

	if morningAt.Valid {
		c.Morning = &models.MorningData{
			Mood:    intPtr(mood),
			Craving: intPtr(craving),
			Anxiety: intPtr(anxiety),
			Sleep:   intPtr(sleep),
		}
	}
	if eveningAt.Valid {
		c.Evening = &models.EveningData{
			OverallDay:   intPtr(overallDay),
			Challenges:   challenges,
			Gratitude:    gratitude,
			TomorrowGoal: tomorrowGoal,
		}
	}
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

// UpsertCheckIn stores c, merging it into an existing record for the same
// date. The stored record is returned.
func (s *Store) UpsertCheckIn(c models.CheckIn) (models.CheckIn, error) {
	now := time.Now()
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	existing, err := s.GetCheckIn(c.Date)
	switch {
	case err == nil:
		c = existing.Merge(c)
	case isNotFound(err):
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
	default:
		return models.CheckIn{}, err
	}

	var (
		morningAt, eveningAt sql.NullString
		m                    models.MorningData
		e                    models.EveningData
	)
	if c.Morning != nil {
		m = *c.Morning
		morningAt = sql.NullString{String: formatTime(c.UpdatedAt), Valid: true}
	}
	if c.Evening != nil {
		e = *c.Evening
		eveningAt = sql.NullString{String: formatTime(c.UpdatedAt), Valid: true}
	}

	_, err = s.exec(`
		INSERT INTO checkins (`+checkInColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			morning_at = excluded.morning_at, mood = excluded.mood, craving = excluded.craving,
			anxiety = excluded.anxiety, sleep = excluded.sleep, evening_at = excluded.evening_at,
			overall_day = excluded.overall_day, challenges = excluded.challenges,
			gratitude = excluded.gratitude, tomorrow_goal = excluded.tomorrow_goal,
			updated_at = excluded.updated_at`,
		c.ID, c.Date, morningAt, nullInt(m.Mood), nullInt(m.Craving), nullInt(m.Anxiety), nullInt(m.Sleep),
		eveningAt, nullInt(e.OverallDay), e.Challenges, e.Gratitude, e.TomorrowGoal,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return models.CheckIn{}, fmt.Errorf("saving check-in %s: %w", c.Date, err)
	}
	return c, nil
}

func (s *Store) GetCheckIn(date string) (models.CheckIn, error) {
	c, err := scanCheckIn(s.queryRow("SELECT "+checkInColumns+" FROM checkins WHERE date = ?", date))
	if isNoRows(err) {
		return models.CheckIn{}, fmt.Errorf("check-in %s: %w", date, storage.ErrNotFound)
	}
	return c, err
}

func (s *Store) GetCheckIns(startDay, endDay string) ([]models.CheckIn, error) {
	var (
		where []string
		args  []any
	)
	if startDay != "" {
		where = append(where, "date >= ?")
		args = append(args, startDay)
	}
	if endDay != "" {
		where = append(where, "date <= ?")
		args = append(args, endDay)
	}

	q := "SELECT " + checkInColumns + " FROM checkins"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY date"

	rows, err := s.query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkIns := []models.CheckIn{}
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}

func (s *Store) DeleteCheckIn(date string) error {
	return s.deleteByKey("checkins", "date", date)
}
