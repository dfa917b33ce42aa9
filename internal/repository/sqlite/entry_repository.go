package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"minhas-financas/internal/domain"
	"minhas-financas/internal/repository"
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	description TEXT NOT NULL,
	month INTEGER NOT NULL,
	year INTEGER NOT NULL,
	amount TEXT NOT NULL,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_entries_user_id ON entries(user_id);
`

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const selectEntryColumns = `SELECT id, user_id, description, month, year, amount, type, status, created_at FROM entries`

type EntryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) repository.EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEntriesTable); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (int64, error) {
	entry.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO entries (user_id, description, month, year, amount, type, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Amount.String(),
		string(entry.Type),
		string(entry.Status),
		entry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE entries
SET user_id=?, description=?, month=?, year=?, amount=?, type=?, status=?
WHERE id=?`,
		entry.UserID,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Amount.String(),
		string(entry.Type),
		string(entry.Status),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return requireAffected(res, "update entry")
}

func (r *EntryRepository) UpdateStatus(ctx context.Context, id int64, status domain.EntryStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE entries SET status=? WHERE id=?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update entry status: %w", err)
	}
	return requireAffected(res, "update entry status")
}

func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return requireAffected(res, "delete entry")
}

func (r *EntryRepository) Get(ctx context.Context, id int64) (*domain.Entry, error) {
	row := r.db.QueryRowContext(ctx, selectEntryColumns+` WHERE id=?`, id)
	return scanEntry(row)
}

func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	var (
		clauses = []string{"user_id = ?"}
		args    = []any{filter.UserID}
	)
	if filter.Description != "" {
		clauses = append(clauses, `LOWER(description) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(filter.Description))+"%")
	}
	if filter.Month != 0 {
		clauses = append(clauses, "month = ?")
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		clauses = append(clauses, "year = ?")
		args = append(args, filter.Year)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := fmt.Sprintf(`%s
WHERE %s
ORDER BY year DESC, month DESC, id DESC`, selectEntryColumns, strings.Join(clauses, " AND "))

	return r.query(ctx, query, args...)
}

func (r *EntryRepository) ListByStatuses(ctx context.Context, userID int64, statuses ...domain.EntryStatus) ([]domain.Entry, error) {
	if len(statuses) == 0 {
		return []domain.Entry{}, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]any, 0, len(statuses)+1)
	args = append(args, userID)
	for i, status := range statuses {
		placeholders[i] = "?"
		args = append(args, string(status))
	}

	query := fmt.Sprintf(`%s
WHERE user_id = ? AND status IN (%s)
ORDER BY id ASC`, selectEntryColumns, strings.Join(placeholders, ","))

	return r.query(ctx, query, args...)
}

func (r *EntryRepository) query(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, rows.Err()
}

func scanEntry(scanner interface {
	Scan(dest ...any) error
}) (*domain.Entry, error) {
	var (
		entry  domain.Entry
		kind   string
		status string
	)

	if err := scanner.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Description,
		&entry.Month,
		&entry.Year,
		&entry.Amount,
		&kind,
		&status,
		&entry.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan entry: %w", err)
	}

	entry.Type = domain.EntryType(kind)
	entry.Status = domain.EntryStatus(status)
	return &entry, nil
}

func requireAffected(res sql.Result, op string) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}
