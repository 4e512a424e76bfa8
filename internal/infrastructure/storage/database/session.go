package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"mailkeeper/internal/domain/credential"
)

const (
	emailColumns = `id, email, password, app_password, secret_key, recovery_email`

	listEmails   = `SELECT ` + emailColumns + ` FROM gmail ORDER BY id DESC LIMIT ? OFFSET ?`
	countEmails  = `SELECT COUNT(*) FROM gmail`
	latestEmails = `SELECT ` + emailColumns + ` FROM gmail ORDER BY id DESC LIMIT ?`
	getEmail     = `SELECT ` + emailColumns + ` FROM gmail WHERE id = ?`
	insertEmail  = `INSERT INTO gmail (email, password, app_password, secret_key, recovery_email) VALUES (?, ?, ?, ?, ?)`
	updateEmail  = `UPDATE gmail SET email = ?, password = ?, app_password = ?, secret_key = ?, recovery_email = ? WHERE id = ?`
	deleteEmail  = `DELETE FROM gmail WHERE id = ?`
)

// Session holds exactly one connection. Every value reaches the database as a
// bound parameter.
type Session struct {
	db      *sql.DB
	dialect dialect
	log     *slog.Logger
}

func (s *Session) List(ctx context.Context, limit, offset int) ([]credential.Credential, int64, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(listEmails), limit, offset)
	if err != nil {
		s.log.Error("failed to list emails", "limit", limit, "offset", offset, "error", err)
		return nil, 0, fmt.Errorf("list emails: %w: %w", credential.ErrStore, err)
	}
	defer rows.Close()

	records, err := scanCredentials(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list emails: %w: %w", credential.ErrStore, err)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, countEmails).Scan(&total); err != nil {
		s.log.Error("failed to count emails", "error", err)
		return nil, 0, fmt.Errorf("count emails: %w: %w", credential.ErrStore, err)
	}

	return records, total, nil
}

func (s *Session) Latest(ctx context.Context, limit int) ([]credential.Credential, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(latestEmails), limit)
	if err != nil {
		s.log.Error("failed to select emails for export", "limit", limit, "error", err)
		return nil, fmt.Errorf("latest emails: %w: %w", credential.ErrStore, err)
	}
	defer rows.Close()

	records, err := scanCredentials(rows)
	if err != nil {
		return nil, fmt.Errorf("latest emails: %w: %w", credential.ErrStore, err)
	}
	return records, nil
}

func (s *Session) Get(ctx context.Context, id int64) (*credential.Credential, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(getEmail), id)

	rec, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credential.ErrNotFound
		}
		s.log.Error("failed to get email", "id", id, "error", err)
		return nil, fmt.Errorf("get email: %w: %w", credential.ErrStore, err)
	}

	return rec, nil
}

func (s *Session) Insert(ctx context.Context, f credential.Fields) (int64, error) {
	args := []interface{}{f.Email, f.Password, f.AppPassword, f.SecretKey, f.RecoveryEmail}

	if s.dialect.numbered {
		var id int64
		if err := s.db.QueryRowContext(ctx, s.dialect.insertQuery(), args...).Scan(&id); err != nil {
			s.log.Error("failed to insert email", "error", err)
			return 0, fmt.Errorf("insert email: %w: %w", credential.ErrStore, err)
		}
		return id, nil
	}

	res, err := s.db.ExecContext(ctx, s.dialect.insertQuery(), args...)
	if err != nil {
		s.log.Error("failed to insert email", "error", err)
		return 0, fmt.Errorf("insert email: %w: %w", credential.ErrStore, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert email: %w: %w", credential.ErrStore, err)
	}

	return id, nil
}

// Update does not look at the affected row count.
func (s *Session) Update(ctx context.Context, id int64, f credential.Fields) error {
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(updateEmail),
		f.Email, f.Password, f.AppPassword, f.SecretKey, f.RecoveryEmail, id)
	if err != nil {
		s.log.Error("failed to update email", "id", id, "error", err)
		return fmt.Errorf("update email: %w: %w", credential.ErrStore, err)
	}
	return nil
}

// Delete does not look at the affected row count.
func (s *Session) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.rebind(deleteEmail), id); err != nil {
		s.log.Error("failed to delete email", "id", id, "error", err)
		return fmt.Errorf("delete email: %w: %w", credential.ErrStore, err)
	}
	return nil
}

func (s *Session) Close() error {
	return s.db.Close()
}

func scanCredentials(rows *sql.Rows) ([]credential.Credential, error) {
	records := make([]credential.Credential, 0)

	for rows.Next() {
		rec, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func scanCredential(row interface {
	Scan(dest ...interface{}) error
}) (*credential.Credential, error) {
	var (
		rec                                  credential.Credential
		email, password                      sql.NullString
		appPassword, secretKey, recoveryMail sql.NullString
	)

	err := row.Scan(&rec.ID, &email, &password, &appPassword, &secretKey, &recoveryMail)
	if err != nil {
		return nil, err
	}

	rec.Email = email.String
	rec.Password = password.String
	rec.AppPassword = nullable(appPassword)
	rec.SecretKey = nullable(secretKey)
	rec.RecoveryEmail = nullable(recoveryMail)

	return &rec, nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
