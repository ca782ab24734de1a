package org

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDepartmentNotFound = errors.New("department not found")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const userColumns = `
    u.id, u.name, u.email,
    COALESCE(u.avatar_url, ''),
    u.base_salary,
    COALESCE(u.department_id::text, ''),
    u.role_id, r.name, u.active, u.created_at, u.updated_at`

func (s *Store) GetUser(ctx context.Context, userID string) (*User, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+userColumns+`
    FROM users u JOIN roles r ON u.role_id = r.id
    WHERE u.id = $1
  `, userID)
	return scanUserRow(row)
}

func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+userColumns+`
    FROM users u JOIN roles r ON u.role_id = r.id
    ORDER BY u.name, u.email
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *user)
	}
	return out, rows.Err()
}

func (s *Store) ListActiveUsers(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+userColumns+`
    FROM users u JOIN roles r ON u.role_id = r.id
    WHERE u.active
    ORDER BY u.name, u.email
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *user)
	}
	return out, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, user User, passwordHash string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, password_hash, avatar_url, base_salary, department_id, role_id, active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, user.Name, user.Email, passwordHash, nullIfEmpty(user.AvatarURL), user.BaseSalary,
		nullIfEmpty(user.DepartmentID), user.RoleID, user.Active).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateUser(ctx context.Context, userID string, user User) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE users
    SET name = $1,
        email = $2,
        avatar_url = $3,
        base_salary = $4,
        department_id = $5,
        role_id = $6,
        active = $7,
        updated_at = now()
    WHERE id = $8
  `, user.Name, user.Email, nullIfEmpty(user.AvatarURL), user.BaseSalary,
		nullIfEmpty(user.DepartmentID), user.RoleID, user.Active, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeactivateUser soft-deletes: the row stays for historical reports.
func (s *Store) DeactivateUser(ctx context.Context, userID string) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE users SET active = FALSE, updated_at = now() WHERE id = $1", userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(manager_id::text, ''), created_at
    FROM departments
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dep Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.ManagerID, &dep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, dep Department) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, manager_id)
    VALUES ($1,$2)
    RETURNING id
  `, dep.Name, nullIfEmpty(dep.ManagerID)).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, departmentID string, dep Department) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE departments
    SET name = $1, manager_id = $2
    WHERE id = $3
  `, dep.Name, nullIfEmpty(dep.ManagerID), departmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) RoleIDByName(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", name).Scan(&id)
	return id, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUserRow(row rowScanner) (*User, error) {
	var user User
	var salary decimal.Decimal
	if err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.AvatarURL, &salary,
		&user.DepartmentID, &user.RoleID, &user.RoleName, &user.Active,
		&user.CreatedAt, &user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.BaseSalary = salary
	return &user, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
