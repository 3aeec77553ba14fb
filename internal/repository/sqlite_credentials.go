package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/reschool/internal/db"
	"github.com/alexanderramin/reschool/internal/domain"
)

// SQLiteCredentialRepo implements CredentialRepo using a SQLite database.
type SQLiteCredentialRepo struct {
	db db.DBTX
}

// NewSQLiteCredentialRepo creates a new SQLiteCredentialRepo.
func NewSQLiteCredentialRepo(conn db.DBTX) *SQLiteCredentialRepo {
	return &SQLiteCredentialRepo{db: conn}
}

func (r *SQLiteCredentialRepo) Get(ctx context.Context) (*domain.Credentials, error) {
	query := `SELECT username, password_hash, device_json, session_id, updated_at
		FROM credentials WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var (
		c          domain.Credentials
		deviceJSON string
		updatedAt  string
	)
	err := row.Scan(&c.Username, &c.PasswordHash, &deviceJSON, &c.SessionID, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("credentials: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning credentials: %w", err)
	}
	if err := json.Unmarshal([]byte(deviceJSON), &c.Device); err != nil {
		return nil, fmt.Errorf("decoding stored device payload: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		c.UpdatedAt = t
	}
	return &c, nil
}

// Save replaces the stored account.
func (r *SQLiteCredentialRepo) Save(ctx context.Context, c *domain.Credentials) error {
	deviceJSON, err := json.Marshal(c.Device)
	if err != nil {
		return fmt.Errorf("encoding device payload: %w", err)
	}
	query := `INSERT OR REPLACE INTO credentials
		(id, username, password_hash, device_json, session_id, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		c.Username,
		c.PasswordHash,
		string(deviceJSON),
		c.SessionID,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	return nil
}

// UpdateSession records a fresh session id for the stored account.
func (r *SQLiteCredentialRepo) UpdateSession(ctx context.Context, sessionID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE credentials SET session_id = ?, updated_at = ? WHERE id = 1`,
		sessionID, nowUTC())
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("credentials: %w", ErrNotFound)
	}
	return nil
}

// Delete forgets the stored account. Deleting when nothing is stored is
// not an error.
func (r *SQLiteCredentialRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("deleting credentials: %w", err)
	}
	return nil
}

var _ CredentialRepo = (*SQLiteCredentialRepo)(nil)
