package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS instructors (
		instructor_id INTEGER PRIMARY KEY,
		first_name    VARCHAR(30) NOT NULL,
		last_name     VARCHAR(30) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS students (
		student_id INTEGER PRIMARY KEY,
		first_name VARCHAR(30) NOT NULL,
		last_name  VARCHAR(30) NOT NULL,
		school_id  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS classes (
		class_id      INTEGER PRIMARY KEY,
		class_desc    VARCHAR(50) NOT NULL,
		days          INTEGER,
		start_date    DATE NOT NULL,
		instructor_id INTEGER NOT NULL REFERENCES instructors (instructor_id)
	);

	CREATE TABLE IF NOT EXISTS class_to_student (
		class_id   INTEGER NOT NULL REFERENCES classes (class_id),
		student_id INTEGER NOT NULL REFERENCES students (student_id),
		PRIMARY KEY (class_id, student_id)
	);

	CREATE INDEX IF NOT EXISTS idx_students_first_name
		ON students (first_name);

	CREATE INDEX IF NOT EXISTS idx_class_to_student_student
		ON class_to_student (student_id);
`

// The delete function removes the student's enrolments first; only the
// student row counts towards affected.
const storedFunctionsDDL = `
	CREATE OR REPLACE FUNCTION %[1]s(
		p_student_id INTEGER,
		OUT affected INTEGER,
		OUT status   VARCHAR(30),
		OUT message  VARCHAR(30)
	) LANGUAGE plpgsql AS $$
	BEGIN
		DELETE FROM class_to_student WHERE student_id = p_student_id;
		DELETE FROM students WHERE student_id = p_student_id;
		GET DIAGNOSTICS affected = ROW_COUNT;
		IF affected = 0 THEN
			status  := 'not found';
			message := 'no student with that id';
		ELSE
			status  := 'ok';
			message := 'student deleted';
		END IF;
	END;
	$$;

	CREATE OR REPLACE FUNCTION %[2]s(
		p_student_id INTEGER,
		p_first_name VARCHAR,
		p_last_name  VARCHAR,
		p_school_id  INTEGER
	) RETURNS INTEGER LANGUAGE plpgsql AS $$
	DECLARE
		affected INTEGER;
	BEGIN
		UPDATE students
		SET first_name = p_first_name,
		    last_name  = p_last_name,
		    school_id  = p_school_id
		WHERE student_id = p_student_id;
		GET DIAGNOSTICS affected = ROW_COUNT;
		RETURN affected;
	END;
	$$;
`

// RunMigrations creates the ClassTrak tables and stored functions.
// It is idempotent.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	ddl := fmt.Sprintf(storedFunctionsDDL, DeleteStudentFunc, EditStudentFunc)
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate stored functions: %w", err)
	}
	return nil
}
