package tasks

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Priority orders tasks in the command center
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Task is a command-center to-do item
type Task struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Notes     string   `json:"notes"`
	Priority  Priority `json:"priority"`
	DueDate   string   `json:"due_date"` // YYYY-MM-DD, empty when unset
	Done      bool     `json:"done"`
	CreatedAt string   `json:"created_at"`
}

// Repository handles task database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new task repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "tasks").Logger(),
	}
}

// List returns all tasks, open ones first, then by due date
func (r *Repository) List() ([]Task, error) {
	rows, err := r.db.Query(`
		SELECT id, title, notes, priority, due_date, done, created_at
		FROM tasks
		ORDER BY done ASC, CASE WHEN due_date = '' THEN 1 ELSE 0 END, due_date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		var done int
		if err := rows.Scan(&t.ID, &t.Title, &t.Notes, &t.Priority, &t.DueDate, &done, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Done = done != 0
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// Create inserts a task and returns it with its assigned ID
func (r *Repository) Create(t Task) (Task, error) {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.Exec(`
		INSERT INTO tasks (title, notes, priority, due_date, done, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.Title, t.Notes, t.Priority, t.DueDate, boolToInt(t.Done), t.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Task{}, fmt.Errorf("failed to get insert id: %w", err)
	}
	t.ID = id

	return t, nil
}

// Update replaces a task's fields
func (r *Repository) Update(t Task) error {
	result, err := r.db.Exec(`
		UPDATE tasks
		SET title = ?, notes = ?, priority = ?, due_date = ?, done = ?
		WHERE id = ?
	`, t.Title, t.Notes, t.Priority, t.DueDate, boolToInt(t.Done), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", t.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %d not found", t.ID)
	}

	return nil
}

// Get returns a single task by ID
func (r *Repository) Get(id int64) (Task, error) {
	row := r.db.QueryRow(`
		SELECT id, title, notes, priority, due_date, done, created_at
		FROM tasks
		WHERE id = ?
	`, id)

	var t Task
	var done int
	if err := row.Scan(&t.ID, &t.Title, &t.Notes, &t.Priority, &t.DueDate, &done, &t.CreatedAt); err != nil {
		return Task{}, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	t.Done = done != 0

	return t, nil
}

// Delete removes a task
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task %d not found", id)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
