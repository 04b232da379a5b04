package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ryanbastic/classtrak/internal/record"
	"github.com/ryanbastic/classtrak/internal/tabular"
)

const listStudentsQuery = `
	SELECT s.student_id AS "StudentID",
	       s.first_name AS "First Name",
	       s.last_name  AS "Last Name",
	       s.school_id  AS "School ID"
	FROM students s
	WHERE s.first_name LIKE 'E%' OR s.first_name LIKE 'F%'
	ORDER BY s.first_name COLLATE "C"
`

const listClassesQuery = `
	SELECT c.class_id             AS "Class ID",
	       c.class_desc           AS "Class Desc",
	       COALESCE(c.days, 0)    AS "Days",
	       c.start_date           AS "StartDate",
	       i.instructor_id        AS "Instructor ID",
	       i.first_name           AS "First Name",
	       i.last_name            AS "Last Name"
	FROM students s
	INNER JOIN class_to_student cts ON s.student_id = cts.student_id
	INNER JOIN classes c ON cts.class_id = c.class_id
	INNER JOIN instructors i ON c.instructor_id = i.instructor_id
	WHERE s.student_id = $1
	ORDER BY c.class_id
`

// PostgresStore implements StudentStore on PostgreSQL.
type PostgresStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPostgresStore creates a StudentStore on the given pool.
// queryTimeout sets the per-query context deadline; zero means no timeout.
func NewPostgresStore(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresStore {
	return &PostgresStore{pool: pool, queryTimeout: queryTimeout}
}

// withTimeout derives a child context with the configured query timeout.
// If queryTimeout is zero, the parent context is returned unchanged.
func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return ctx, func() {}
}

// Ping checks connectivity; it lets the store back a readiness check.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) ListStudents(ctx context.Context) (tabular.Result, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, listStudentsQuery)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	t, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) ListClassesForStudent(ctx context.Context, studentID int) (tabular.Result, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, listClassesQuery, studentID)
	if err != nil {
		return nil, fmt.Errorf("list classes for student %d: %w", studentID, err)
	}
	t, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("list classes for student %d: %w", studentID, err)
	}
	return t, nil
}

func (s *PostgresStore) DeleteStudent(ctx context.Context, studentID int) (*record.DeleteOutcome, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT affected, message, status FROM %s($1)`, DeleteStudentFunc)

	var (
		affected        int
		message, status *string
	)
	err := s.pool.QueryRow(ctx, query, studentID).Scan(&affected, &message, &status)
	if err != nil {
		return nil, fmt.Errorf("delete student %d: %w", studentID, err)
	}
	return &record.DeleteOutcome{
		Rows:    affected,
		Message: deref(message),
		Status:  deref(status),
	}, nil
}

func (s *PostgresStore) UpdateStudent(ctx context.Context, req record.UpdateRequest) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s($1, $2, $3, $4)`, EditStudentFunc)

	var affected int
	err := s.pool.QueryRow(ctx, query, int(req.ID), req.FName, req.LName, int(req.SchoolID)).Scan(&affected)
	if err != nil {
		return 0, fmt.Errorf("update student %d: %w", req.ID, err)
	}
	return affected, nil
}

// collect drains rows into a Result, header first. The header is taken from
// the result's field descriptions so it is present even with no data rows.
// DATE columns render without a time of day; timestamps keep theirs.
func collect(rows pgx.Rows) (tabular.Result, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var values [][]any
	for rows.Next() {
		v, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		for i, f := range fields {
			if t, ok := v[i].(time.Time); ok && f.DataTypeOID == pgtype.DateOID {
				v[i] = tabular.Date(t)
			}
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return tabular.Encode(columns, values)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
