package ledger

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"
)

// ValidationError reports a record field that failed validation.
// Validation runs before any statement reaches the store, so invalid
// records never touch the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation returns true if the error is a field validation error.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func requireText(field, value string) error {
	if value == "" {
		return invalid(field, "must not be empty")
	}
	return nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return invalid(field, "must be a positive integer")
	}
	return nil
}

func requireDate(field, value, layout string) error {
	if value == "" {
		return invalid(field, "must not be empty")
	}
	if _, err := time.Parse(layout, value); err != nil {
		return invalid(field, fmt.Sprintf("must match %s", layout))
	}
	return nil
}

// nfc normalizes text to Unicode NFC so grouping keys (city, food type,
// location) compare consistently regardless of how the caller composed them.
func nfc(s string) string {
	return norm.NFC.String(s)
}

// Validate checks required fields. ID must be positive; all text fields
// must be non-empty.
func (p Provider) Validate() error {
	if err := requireID("provider_id", p.ID); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"name", p.Name},
		{"type", p.Type},
		{"address", p.Address},
		{"city", p.City},
		{"contact", p.Contact},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Normalized returns a copy with all text fields in NFC form.
func (p Provider) Normalized() Provider {
	p.Name = nfc(p.Name)
	p.Type = nfc(p.Type)
	p.Address = nfc(p.Address)
	p.City = nfc(p.City)
	p.Contact = nfc(p.Contact)
	return p
}

// Validate checks required fields.
func (r Receiver) Validate() error {
	if err := requireID("receiver_id", r.ID); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"name", r.Name},
		{"type", r.Type},
		{"city", r.City},
		{"contact", r.Contact},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Normalized returns a copy with all text fields in NFC form.
func (r Receiver) Normalized() Receiver {
	r.Name = nfc(r.Name)
	r.Type = nfc(r.Type)
	r.City = nfc(r.City)
	r.Contact = nfc(r.Contact)
	return r
}

// Validate checks required fields, the quantity bound and the expiry
// date format.
func (l FoodListing) Validate() error {
	if err := requireID("food_id", l.ID); err != nil {
		return err
	}
	if err := requireText("food_name", l.FoodName); err != nil {
		return err
	}
	if l.Quantity < 0 {
		return invalid("quantity", "must not be negative")
	}
	if err := requireDate("expiry_date", l.ExpiryDate, DateLayout); err != nil {
		return err
	}
	if err := requireID("provider_id", l.ProviderID); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"provider_type", l.ProviderType},
		{"location", l.Location},
		{"food_type", l.FoodType},
		{"meal_type", l.MealType},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Normalized returns a copy with all text fields in NFC form.
func (l FoodListing) Normalized() FoodListing {
	l.FoodName = nfc(l.FoodName)
	l.ProviderType = nfc(l.ProviderType)
	l.Location = nfc(l.Location)
	l.FoodType = nfc(l.FoodType)
	l.MealType = nfc(l.MealType)
	return l
}

// Validate checks required fields, the status enumeration and the
// timestamp format.
func (c Claim) Validate() error {
	if err := requireID("claim_id", c.ID); err != nil {
		return err
	}
	if err := requireID("food_id", c.FoodID); err != nil {
		return err
	}
	if err := requireID("receiver_id", c.ReceiverID); err != nil {
		return err
	}
	if !c.Status.Valid() {
		return invalid("status", fmt.Sprintf("must be one of %v", Statuses))
	}
	return requireDate("timestamp", c.Timestamp, TimestampLayout)
}

// Normalized returns a copy of the claim; claims carry no free text
// beyond the enumerated status, so there is nothing to normalize.
func (c Claim) Normalized() Claim {
	return c
}
