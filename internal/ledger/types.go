package ledger

// ClaimStatus is the lifecycle state of a claim.
// Only the three enumerated values are accepted by the store.
type ClaimStatus string

const (
	StatusPending   ClaimStatus = "Pending"
	StatusCompleted ClaimStatus = "Completed"
	StatusCancelled ClaimStatus = "Cancelled"
)

// Statuses lists every valid claim status.
var Statuses = []ClaimStatus{StatusPending, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the enumerated claim statuses.
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Date and timestamp layouts used across the ledger.
// Dates are stored as text in these exact shapes.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Provider is an entity offering surplus food.
// IDs are caller-assigned and immutable after creation.
type Provider struct {
	ID      int64  `json:"provider_id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Address string `json:"address" yaml:"address"`
	City    string `json:"city" yaml:"city"`
	Contact string `json:"contact" yaml:"contact"`
}

// Receiver is an entity (e.g. an NGO) that claims surplus food.
type Receiver struct {
	ID      int64  `json:"receiver_id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	City    string `json:"city" yaml:"city"`
	Contact string `json:"contact" yaml:"contact"`
}

// FoodListing is a posted batch of available food tied to a provider.
// ProviderType is denormalized onto the listing row; the aggregate
// reports group by it directly.
type FoodListing struct {
	ID           int64  `json:"food_id" yaml:"id"`
	FoodName     string `json:"food_name" yaml:"food_name"`
	Quantity     int64  `json:"quantity" yaml:"quantity"`
	ExpiryDate   string `json:"expiry_date" yaml:"expiry_date"` // DateLayout
	ProviderID   int64  `json:"provider_id" yaml:"provider_id"`
	ProviderType string `json:"provider_type" yaml:"provider_type"`
	Location     string `json:"location" yaml:"location"`
	FoodType     string `json:"food_type" yaml:"food_type"`
	MealType     string `json:"meal_type" yaml:"meal_type"`
}

// Claim is a receiver's reservation against a food listing.
type Claim struct {
	ID         int64       `json:"claim_id" yaml:"id"`
	FoodID     int64       `json:"food_id" yaml:"food_id"`
	ReceiverID int64       `json:"receiver_id" yaml:"receiver_id"`
	Status     ClaimStatus `json:"status" yaml:"status"`
	Timestamp  string      `json:"timestamp" yaml:"timestamp"` // TimestampLayout
}
