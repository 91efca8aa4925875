package tributes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmuchiri/tributewall/internal/dbx"
)

// SQLiteRepository implements Repository on a *sql.DB. Deletes run in a
// transaction so the ownership check and the removal see the same row.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Record, error) {
	query := `SELECT id, name, relation, message, location, owner_uuid, submitted_at
			FROM tributes ORDER BY submitted_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select tributes: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var item Record
		if err := rows.Scan(&item.ID, &item.Name, &item.Relation, &item.Message,
			&item.Location, &item.OwnerUUID, &item.SubmittedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec *Record) (int64, error) {
	query := `INSERT INTO tributes (name, relation, message, location, owner_uuid, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		rec.Name, rec.Relation, rec.Message, rec.Location, rec.OwnerUUID, rec.SubmittedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tribute: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64, ownerUUID string) (DeleteOutcome, error) {
	outcome := NotFound

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var owner string
		err := tx.QueryRowContext(ctx, `SELECT owner_uuid FROM tributes WHERE id = ?`, id).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) {
			outcome = NotFound
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to look up tribute: %w", err)
		}

		if owner != ownerUUID {
			outcome = Forbidden
			return nil
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tributes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete tribute: %w", err)
		}
		outcome = Deleted
		return nil
	})
	if err != nil {
		return NotFound, err
	}
	return outcome, nil
}
