package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/weekcal/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

type Repository interface {
	Store(ctx context.Context, profile Profile) (Profile, error)
	GetByUid(ctx context.Context, uid string) (Profile, error)
	GetByName(ctx context.Context, name string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, profile Profile) (Profile, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectProfile = `SELECT id, uid, name, min_days_in_first_week, first_day_of_week, irregular_weeks, calendar, created_at, updated_at
			FROM week_rule_profile`

func (r *RepositoryImpl) Store(ctx context.Context, profile Profile) (Profile, error) {
	query := `INSERT INTO week_rule_profile (
                    uid,
                    name,
                    min_days_in_first_week,
                    first_day_of_week,
                    irregular_weeks,
                    calendar
				) VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.Uid,
		profile.Name,
		profile.MinDaysInFirstWeek,
		int(profile.FirstDayOfWeek),
		profile.IrregularWeeks,
		profile.Calendar,
	).Scan(&profile.Id, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Profile{}, fmt.Errorf("%w: %s", ErrProfileNameTaken, profile.Name)
		}
		err := fmt.Errorf("could not store profile: %w", err)
		log.Error(err)
		return Profile{}, err
	}
	return profile, nil
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, uid string) (Profile, error) {
	return r.getOne(ctx, selectProfile+" WHERE uid = $1", uid)
}

func (r *RepositoryImpl) GetByName(ctx context.Context, name string) (Profile, error) {
	return r.getOne(ctx, selectProfile+" WHERE name = $1", name)
}

func (r *RepositoryImpl) getOne(ctx context.Context, query string, arg string) (Profile, error) {
	profile, err := scanProfile(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		err := fmt.Errorf("could not get profile: %w", err)
		log.Error(err)
		return Profile{}, err
	}
	return profile, nil
}

func (r *RepositoryImpl) List(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.Query(ctx, selectProfile+" ORDER BY name")
	if err != nil {
		err := fmt.Errorf("could not query profiles: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	profiles := make([]Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return profiles, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, profile Profile) (Profile, error) {
	query := `UPDATE week_rule_profile SET
                    name = $2,
                    min_days_in_first_week = $3,
                    first_day_of_week = $4,
                    irregular_weeks = $5,
                    calendar = $6,
                    updated_at = now()
				WHERE uid = $1
				RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.Uid,
		profile.Name,
		profile.MinDaysInFirstWeek,
		int(profile.FirstDayOfWeek),
		profile.IrregularWeeks,
		profile.Calendar,
	).Scan(&profile.Id, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		if isUniqueViolation(err) {
			return Profile{}, fmt.Errorf("%w: %s", ErrProfileNameTaken, profile.Name)
		}
		err := fmt.Errorf("could not update profile: %w", err)
		log.Error(err)
		return Profile{}, err
	}
	return profile, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, uid string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM week_rule_profile WHERE uid = $1", uid)
	if err != nil {
		err := fmt.Errorf("could not delete profile: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanProfile(row pgx.Row) (Profile, error) {
	var (
		profile  Profile
		minDays  int
		firstDay int
	)
	err := row.Scan(
		&profile.Id,
		&profile.Uid,
		&profile.Name,
		&minDays,
		&firstDay,
		&profile.IrregularWeeks,
		&profile.Calendar,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return Profile{}, err
	}
	profile.MinDaysInFirstWeek = minDays
	profile.FirstDayOfWeek = calendar.IsoDayOfWeek(firstDay)
	return profile, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
