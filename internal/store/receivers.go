package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/surplus/internal/ledger"
)

// rowsAffected extracts the affected-row count from a statement result.
func rowsAffected(res sql.Result, op string) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	return n, nil
}

// AddReceiver inserts a new receiver row.
// Fails with a DUPLICATE_KEY error if the primary key already exists.
func (s *Store) AddReceiver(ctx context.Context, r ledger.Receiver) (ledger.Receiver, error) {
	if err := r.Validate(); err != nil {
		return ledger.Receiver{}, err
	}
	r = r.Normalized()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO receivers (receiver_id, name, type, city, contact)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.Name, r.Type, r.City, r.Contact)
	if err != nil {
		return ledger.Receiver{}, classify(s.dialect, "add receiver", err)
	}

	return r, nil
}

// UpdateReceiver overwrites all mutable fields of the receiver identified
// by r.ID. Returns the number of rows affected; 0 means not found.
func (s *Store) UpdateReceiver(ctx context.Context, r ledger.Receiver) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	r = r.Normalized()

	res, err := s.db.ExecContext(ctx, `
		UPDATE receivers
		SET name = ?, type = ?, city = ?, contact = ?
		WHERE receiver_id = ?
	`, r.Name, r.Type, r.City, r.Contact, r.ID)
	if err != nil {
		return 0, classify(s.dialect, "update receiver", err)
	}

	return rowsAffected(res, "update receiver")
}

// DeleteReceiver removes the receiver row. Deleting a receiver that still
// has claims is rejected with a FOREIGN_KEY error.
func (s *Store) DeleteReceiver(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM receivers WHERE receiver_id = ?
	`, id)
	if err != nil {
		return 0, classify(s.dialect, "delete receiver", err)
	}

	return rowsAffected(res, "delete receiver")
}

// ListReceivers returns all receiver rows ordered by ID.
func (s *Store) ListReceivers(ctx context.Context) ([]ledger.Receiver, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT receiver_id, name, type, city, contact
		FROM receivers
		ORDER BY receiver_id ASC
	`)
	if err != nil {
		return nil, classify(s.dialect, "list receivers", err)
	}
	defer rows.Close()

	receivers := []ledger.Receiver{}
	for rows.Next() {
		var r ledger.Receiver
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.City, &r.Contact); err != nil {
			return nil, classify(s.dialect, "scan receiver", err)
		}
		receivers = append(receivers, r)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(s.dialect, "iterate receivers", err)
	}

	return receivers, nil
}
