package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RecordSQLite stores entity documents in the records table, one row per
// entity, discriminated by kind.
type RecordSQLite struct {
	db *sql.DB
}

func NewRecordSQLite(db *sql.DB) *RecordSQLite { return &RecordSQLite{db: db} }

var _ RecordRepo = (*RecordSQLite)(nil)

const (
	insertRecordSQL = `INSERT INTO records (kind, device_id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	selectRecordSQL = `SELECT id, kind, device_id, body, created_at, updated_at FROM records WHERE kind = ? AND id = ?`
	listRecordsSQL  = `SELECT id, kind, device_id, body, created_at, updated_at FROM records`
	updateRecordSQL = `UPDATE records SET device_id = ?, body = ?, updated_at = ? WHERE kind = ? AND id = ?`
	deleteRecordSQL = `DELETE FROM records WHERE kind = ? AND id = ?`
)

// Insert stores a new document and returns it with its assigned id.
func (r *RecordSQLite) Insert(ctx context.Context, kind string, deviceID *int64, body []byte) (Record, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertRecordSQL, kind, nullableID(deviceID), string(body), now, now)
	if err != nil {
		return Record{}, fmt.Errorf("insert %s: %w", kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("get last insert id for %s: %w", kind, err)
	}
	return Record{
		ID:        id,
		Kind:      kind,
		DeviceID:  deviceID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Get fetches one document. Returns (nil, nil) if not found.
func (r *RecordSQLite) Get(ctx context.Context, kind string, id int64) (*Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx, selectRecordSQL, kind, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select %s %d: %w", kind, id, err)
	}
	return &rec, nil
}

// List returns documents of kind filtered by device and creation time.
func (r *RecordSQLite) List(ctx context.Context, kind string, f RecordFilter) ([]Record, error) {
	conds := []string{"kind = ?"}
	args := []any{kind}

	if f.DeviceID != nil {
		conds = append(conds, "device_id = ?")
		args = append(args, *f.DeviceID)
	}
	if !f.Since.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.Since.UTC())
	}

	q := listRecordsSQL + " WHERE " + strings.Join(conds, " AND ")
	if f.Newest {
		q += " ORDER BY created_at DESC, id DESC"
	} else {
		q += " ORDER BY id ASC"
	}
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	out := make([]Record, 0, 16)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the body of an existing document. It reports false when
// no row matched.
func (r *RecordSQLite) Update(ctx context.Context, kind string, id int64, deviceID *int64, body []byte) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateRecordSQL, nullableID(deviceID), string(body), time.Now().UTC(), kind, id)
	if err != nil {
		return false, fmt.Errorf("update %s %d: %w", kind, id, err)
	}
	return affected(res)
}

// Delete removes a document. It reports false when no row matched.
func (r *RecordSQLite) Delete(ctx context.Context, kind string, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteRecordSQL, kind, id)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	return affected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (Record, error) {
	var (
		rec      Record
		deviceID sql.NullInt64
		body     string
	)
	if err := s.Scan(&rec.ID, &rec.Kind, &deviceID, &body, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return Record{}, err
	}
	if deviceID.Valid {
		v := deviceID.Int64
		rec.DeviceID = &v
	}
	rec.Body = []byte(body)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
