package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("attachment not found")

type Attachment struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	UploaderID  string    `json:"uploaderId,omitempty"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Service stores attachment bytes on local disk and metadata in Postgres.
// Stored files get opaque uuid names so user-supplied filenames never touch
// the filesystem.
type Service struct {
	DB  *pgxpool.Pool
	Dir string
}

func NewService(db *pgxpool.Pool, dir string) *Service {
	return &Service{DB: db, Dir: dir}
}

func (s *Service) Save(ctx context.Context, taskID, uploaderID, fileName, contentType string, content io.Reader) (*Attachment, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}

	storedName := uuid.NewString()
	storedPath := filepath.Join(s.Dir, storedName)
	out, err := os.Create(storedPath)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(out, content)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(storedPath)
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	att := Attachment{
		TaskID:      taskID,
		UploaderID:  uploaderID,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
	}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO attachments (task_id, uploader_id, file_name, content_type, size_bytes, stored_path)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, taskID, nullIfEmpty(uploaderID), fileName, contentType, size, storedName).Scan(&att.ID, &att.CreatedAt)
	if err != nil {
		_ = os.Remove(storedPath)
		return nil, err
	}
	return &att, nil
}

func (s *Service) ListForTask(ctx context.Context, taskID string) ([]Attachment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, task_id, COALESCE(uploader_id::text, ''), file_name, content_type, size_bytes, created_at
    FROM attachments
    WHERE task_id = $1
    ORDER BY created_at
  `, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attachment
	for rows.Next() {
		var att Attachment
		if err := rows.Scan(&att.ID, &att.TaskID, &att.UploaderID, &att.FileName,
			&att.ContentType, &att.SizeBytes, &att.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, att)
	}
	return out, rows.Err()
}

// Open returns the attachment metadata and a reader over its bytes. The
// caller closes the reader.
func (s *Service) Open(ctx context.Context, attachmentID string) (*Attachment, io.ReadCloser, error) {
	var att Attachment
	var storedName string
	err := s.DB.QueryRow(ctx, `
    SELECT id, task_id, COALESCE(uploader_id::text, ''), file_name, content_type, size_bytes, stored_path, created_at
    FROM attachments
    WHERE id = $1
  `, attachmentID).Scan(&att.ID, &att.TaskID, &att.UploaderID, &att.FileName,
		&att.ContentType, &att.SizeBytes, &storedName, &att.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.Dir, filepath.Base(storedName)))
	if err != nil {
		return nil, nil, fmt.Errorf("open attachment %s: %w", attachmentID, err)
	}
	return &att, file, nil
}

func (s *Service) Delete(ctx context.Context, attachmentID string) error {
	var storedName string
	err := s.DB.QueryRow(ctx,
		"DELETE FROM attachments WHERE id = $1 RETURNING stored_path", attachmentID).Scan(&storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.Dir, filepath.Base(storedName))); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
