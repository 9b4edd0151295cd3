package store

import (
	"context"

	"github.com/roach88/surplus/internal/ledger"
)

// AddProvider inserts a new provider row.
// Fails with a DUPLICATE_KEY error if the primary key already exists.
// On success returns the stored record (text fields NFC-normalized).
func (s *Store) AddProvider(ctx context.Context, p ledger.Provider) (ledger.Provider, error) {
	if err := p.Validate(); err != nil {
		return ledger.Provider{}, err
	}
	p = p.Normalized()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO providers (provider_id, name, type, address, city, contact)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Type, p.Address, p.City, p.Contact)
	if err != nil {
		return ledger.Provider{}, classify(s.dialect, "add provider", err)
	}

	return p, nil
}

// UpdateProvider overwrites all mutable fields of the provider identified
// by p.ID. The ID itself is immutable. Returns the number of rows
// affected; 0 means not found and is not an error.
func (s *Store) UpdateProvider(ctx context.Context, p ledger.Provider) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	p = p.Normalized()

	res, err := s.db.ExecContext(ctx, `
		UPDATE providers
		SET name = ?, type = ?, address = ?, city = ?, contact = ?
		WHERE provider_id = ?
	`, p.Name, p.Type, p.Address, p.City, p.Contact, p.ID)
	if err != nil {
		return 0, classify(s.dialect, "update provider", err)
	}

	return rowsAffected(res, "update provider")
}

// DeleteProvider removes the provider row. Returns the number of rows
// affected (0 or 1). Deleting a provider that still has food listings is
// rejected with a FOREIGN_KEY error; the caller must delete the listings
// first.
func (s *Store) DeleteProvider(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM providers WHERE provider_id = ?
	`, id)
	if err != nil {
		return 0, classify(s.dialect, "delete provider", err)
	}

	return rowsAffected(res, "delete provider")
}

// ListProviders returns all provider rows ordered by ID.
// Returns an empty slice (not nil) when the table is empty. The result
// is re-fetched on every call; writes are visible to the next list.
func (s *Store) ListProviders(ctx context.Context) ([]ledger.Provider, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT provider_id, name, type, address, city, contact
		FROM providers
		ORDER BY provider_id ASC
	`)
	if err != nil {
		return nil, classify(s.dialect, "list providers", err)
	}
	defer rows.Close()

	providers := []ledger.Provider{}
	for rows.Next() {
		var p ledger.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Address, &p.City, &p.Contact); err != nil {
			return nil, classify(s.dialect, "scan provider", err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(s.dialect, "iterate providers", err)
	}

	return providers, nil
}
