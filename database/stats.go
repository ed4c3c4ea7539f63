package database

import (
	"fmt"

	"academy-backend/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // драйвер PostgreSQL для sqlx
)

// Overview — сводные счетчики для дашборда
type Overview struct {
	Students int `db:"students" json:"students"`
	Teachers int `db:"teachers" json:"teachers"`
	Courses  int `db:"courses" json:"courses"`
	Users    int `db:"users" json:"users"`
}

// TeacherLoad — количество курсов у преподавателя
type TeacherLoad struct {
	TeacherID uint   `db:"teacher_id" json:"teacher_id"`
	FullName  string `db:"full_name" json:"full_name"`
	Courses   int    `db:"courses" json:"courses"`
}

// StatsReader выполняет агрегатные запросы напрямую через sqlx,
// минуя ORM: дашборду не нужны загруженные ассоциации
type StatsReader struct {
	db *sqlx.DB
}

func NewStatsReader(cfg *config.Config) (*StatsReader, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error connecting stats reader: %w", err)
	}
	return &StatsReader{db: db}, nil
}

func (r *StatsReader) Close() error {
	return r.db.Close()
}

func (r *StatsReader) Overview() (*Overview, error) {
	var overview Overview
	query := `
	SELECT
	    (SELECT COUNT(*) FROM students WHERE deleted_at IS NULL) AS students,
	    (SELECT COUNT(*) FROM teachers WHERE deleted_at IS NULL) AS teachers,
	    (SELECT COUNT(*) FROM courses  WHERE deleted_at IS NULL) AS courses,
	    (SELECT COUNT(*) FROM users    WHERE deleted_at IS NULL) AS users`
	if err := r.db.Get(&overview, query); err != nil {
		return nil, fmt.Errorf("error loading overview: %w", err)
	}
	return &overview, nil
}

func (r *StatsReader) TeacherLoads() ([]TeacherLoad, error) {
	var loads []TeacherLoad
	query := `
	SELECT t.id AS teacher_id,
	       t.first_name || ' ' || t.last_name AS full_name,
	       COUNT(c.id) AS courses
	FROM teachers t
	LEFT JOIN courses c ON c.teacher_id = t.id AND c.deleted_at IS NULL
	WHERE t.deleted_at IS NULL
	GROUP BY t.id, t.first_name, t.last_name
	ORDER BY t.id`
	if err := r.db.Select(&loads, query); err != nil {
		return nil, fmt.Errorf("error loading teacher loads: %w", err)
	}
	return loads, nil
}
