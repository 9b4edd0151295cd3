package store

import (
	"context"

	"github.com/roach88/surplus/internal/ledger"
)

// AddClaim inserts a new claim row.
// Both food_id and receiver_id must reference existing rows; a missing
// reference fails with a FOREIGN_KEY error. The status enumeration is
// enforced here and by a CHECK constraint in the schema.
func (s *Store) AddClaim(ctx context.Context, c ledger.Claim) (ledger.Claim, error) {
	if err := c.Validate(); err != nil {
		return ledger.Claim{}, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO claims (claim_id, food_id, receiver_id, status, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.FoodID, c.ReceiverID, string(c.Status), c.Timestamp)
	if err != nil {
		return ledger.Claim{}, classify(s.dialect, "add claim", err)
	}

	return c, nil
}

// UpdateClaim overwrites all mutable fields of the claim identified by
// c.ID. Returns the number of rows affected; 0 means not found.
func (s *Store) UpdateClaim(ctx context.Context, c ledger.Claim) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE claims
		SET food_id = ?, receiver_id = ?, status = ?, timestamp = ?
		WHERE claim_id = ?
	`, c.FoodID, c.ReceiverID, string(c.Status), c.Timestamp, c.ID)
	if err != nil {
		return 0, classify(s.dialect, "update claim", err)
	}

	return rowsAffected(res, "update claim")
}

// DeleteClaim removes the claim row. Claims are leaves of the reference
// graph, so deletion never violates referential integrity.
func (s *Store) DeleteClaim(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM claims WHERE claim_id = ?
	`, id)
	if err != nil {
		return 0, classify(s.dialect, "delete claim", err)
	}

	return rowsAffected(res, "delete claim")
}

// ListClaims returns all claim rows ordered by ID.
func (s *Store) ListClaims(ctx context.Context) ([]ledger.Claim, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT claim_id, food_id, receiver_id, status, timestamp
		FROM claims
		ORDER BY claim_id ASC
	`)
	if err != nil {
		return nil, classify(s.dialect, "list claims", err)
	}
	defer rows.Close()

	claims := []ledger.Claim{}
	for rows.Next() {
		var (
			c      ledger.Claim
			status string
		)
		if err := rows.Scan(&c.ID, &c.FoodID, &c.ReceiverID, &status, &c.Timestamp); err != nil {
			return nil, classify(s.dialect, "scan claim", err)
		}
		c.Status = ledger.ClaimStatus(status)
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(s.dialect, "iterate claims", err)
	}

	return claims, nil
}
