package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const taskColumns = `
    t.id,
    COALESCE(t.project_id::text, ''),
    t.title, t.description, t.status, t.priority,
    COALESCE(t.assignee_id::text, ''),
    COALESCE(u.name, ''),
    t.due_date, t.completed_at, t.created_at, t.updated_at`

// ListTasks returns every task, optionally restricted to one project. View
// filtering/sorting happens in memory through the listing utility; the
// dashboard's whole task set is small.
func (s *Store) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	query := `
    SELECT ` + taskColumns + `
    FROM tasks t
    LEFT JOIN users u ON t.assignee_id = u.id`
	args := []any{}
	if projectID != "" {
		query += " WHERE t.project_id = $1"
		args = append(args, projectID)
	}
	query += " ORDER BY t.created_at"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var task Task
		if err := rows.Scan(
			&task.ID, &task.ProjectID, &task.Title, &task.Description,
			&task.Status, &task.Priority, &task.AssigneeID, &task.AssigneeName,
			&task.DueDate, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, taskID string) (*Task, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+taskColumns+`
    FROM tasks t
    LEFT JOIN users u ON t.assignee_id = u.id
    WHERE t.id = $1
  `, taskID)

	var task Task
	if err := row.Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.AssigneeID, &task.AssigneeName,
		&task.DueDate, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Store) CreateTask(ctx context.Context, task Task) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO tasks (project_id, title, description, status, priority, assignee_id, due_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, nullIfEmpty(task.ProjectID), task.Title, task.Description, task.Status, task.Priority,
		nullIfEmpty(task.AssigneeID), task.DueDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateTask(ctx context.Context, taskID string, task Task) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE tasks
    SET title = $1,
        description = $2,
        priority = $3,
        assignee_id = $4,
        due_date = $5,
        project_id = $6,
        updated_at = now()
    WHERE id = $7
  `, task.Title, task.Description, task.Priority, nullIfEmpty(task.AssigneeID),
		task.DueDate, nullIfEmpty(task.ProjectID), taskID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// UpdateStatus moves a task between board columns; completed_at is set on the
// transition into done and cleared when the task leaves done.
func (s *Store) UpdateStatus(ctx context.Context, taskID, status string, now time.Time) error {
	var completedAt any
	if status == StatusDone {
		completedAt = now
	}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE tasks
    SET status = $1, completed_at = $2, updated_at = now()
    WHERE id = $3
  `, status, completedAt, taskID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, taskID string) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM tasks WHERE id = $1", taskID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, description, COALESCE(owner_id::text, ''), created_at
    FROM projects
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var project Project
		if err := rows.Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID, &project.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, project)
	}
	return out, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, description, COALESCE(owner_id::text, ''), created_at
    FROM projects
    WHERE id = $1
  `, projectID).Scan(&project.ID, &project.Name, &project.Description, &project.OwnerID, &project.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *Store) CreateProject(ctx context.Context, project Project) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO projects (name, description, owner_id)
    VALUES ($1,$2,$3)
    RETURNING id
  `, project.Name, project.Description, nullIfEmpty(project.OwnerID)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
