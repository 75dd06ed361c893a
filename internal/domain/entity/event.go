package entity

import (
	"time"

	"github.com/google/uuid"
)

// EconomyEventType names a committed balance mutation.
type EconomyEventType string

const (
	EventCheckin      EconomyEventType = "checkin"
	EventItemPurchase EconomyEventType = "item_purchase"
	EventTransfer     EconomyEventType = "transfer"
	EventLandPurchase EconomyEventType = "land_purchase"
	EventLandResale   EconomyEventType = "land_resale"
	EventNodeReward   EconomyEventType = "node_reward"
)

// EconomyEvent is emitted after an economy transaction commits.
type EconomyEvent struct {
	RequestID    string           `json:"request_id,omitempty"` // For distributed tracing
	Type         EconomyEventType `json:"type"`
	UserID       uuid.UUID        `json:"user_id"`
	Counterparty *uuid.UUID       `json:"counterparty_id,omitempty"`
	SubjectID    *uuid.UUID       `json:"subject_id,omitempty"` // Item, plot or node involved
	Amount       int              `json:"amount"`               // Signed change of UserID's balance
	OccurredAt   time.Time        `json:"occurred_at"`
}
