package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/db"
	"github.com/kursroster/backend/internal/pkg/apperrors"
	"github.com/kursroster/backend/internal/pkg/logger"
)

// studentsSchema holds the roster in one table; position preserves insertion
// order across whole-roster rewrites.
const studentsSchema = `
CREATE TABLE IF NOT EXISTS students (
	id             TEXT PRIMARY KEY,
	position       INTEGER NOT NULL,
	first_name     TEXT NOT NULL,
	last_name      TEXT NOT NULL,
	gender         TEXT NOT NULL,
	birth_date     TEXT NOT NULL,
	school         TEXT NOT NULL,
	desired_course TEXT NOT NULL DEFAULT '',
	courses        TEXT[] NOT NULL,
	attendance     TEXT[] NOT NULL,
	av             TEXT NOT NULL DEFAULT '',
	sv             TEXT NOT NULL DEFAULT ''
)`

// PostgresRosterStore keeps the roster in PostgreSQL while preserving the
// whole-snapshot contract: WriteAll swaps the complete collection inside one
// transaction, so concurrent readers see either the old or the new roster.
type PostgresRosterStore struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewPostgresRosterStore creates the store and ensures the schema exists.
func NewPostgresRosterStore(ctx context.Context, database *db.PostgresDB) (*PostgresRosterStore, error) {
	if _, err := database.Pool.Exec(ctx, studentsSchema); err != nil {
		return nil, fmt.Errorf("%w: ensuring students schema: %v", apperrors.ErrStorageUnavailable, err)
	}
	return &PostgresRosterStore{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// ReadAll implements RosterStore.
func (s *PostgresRosterStore) ReadAll(ctx context.Context) ([]models.Student, error) {
	sql, args, err := s.sb.Select(
		"id", "first_name", "last_name", "gender", "birth_date", "school",
		"desired_course", "courses", "attendance", "av", "sv",
	).From("students").OrderBy("position").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster select: %w", err)
	}

	rows, err := s.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error reading roster from database")
		return nil, fmt.Errorf("%w: querying students: %v", apperrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(
			&st.ID, &st.FirstName, &st.LastName, &st.Gender, &st.BirthDate,
			&st.School, &st.DesiredCourse, &st.Courses, &st.Attendance,
			&st.AV, &st.SV,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning student row: %v", apperrors.ErrStorageUnavailable, err)
		}
		st.Normalize()
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating student rows: %v", apperrors.ErrStorageUnavailable, err)
	}
	return students, nil
}

// WriteAll implements RosterStore.
func (s *PostgresRosterStore) WriteAll(ctx context.Context, students []models.Student) error {
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM students"); err != nil {
			return fmt.Errorf("clearing students: %w", err)
		}

		for pos, st := range students {
			sql, args, err := s.sb.Insert("students").Columns(
				"id", "position", "first_name", "last_name", "gender",
				"birth_date", "school", "desired_course", "courses",
				"attendance", "av", "sv",
			).Values(
				st.ID, pos, st.FirstName, st.LastName, st.Gender,
				st.BirthDate, st.School, st.DesiredCourse, st.Courses,
				st.Attendance, st.AV, st.SV,
			).ToSql()
			if err != nil {
				return fmt.Errorf("building student insert: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("inserting student %s: %w", st.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error writing roster to database")
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
