package events

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// OperationEvent carries the full operation row so consumers in other
// processes can record it without access to the in-memory store.
type OperationEvent struct {
	Action      string             `json:"action"`
	ID          uuid.UUID          `json:"id"`
	Type        core.OperationType `json:"type"`
	AccountID   uuid.UUID          `json:"account_id"`
	CategoryID  uuid.UUID          `json:"category_id"`
	Amount      string             `json:"amount"`
	Date        time.Time          `json:"date"`
	Description string             `json:"description,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

// NewOperationEvent snapshots op for publishing.
func NewOperationEvent(action string, op core.Operation) OperationEvent {
	return OperationEvent{
		Action:      action,
		ID:          op.ID,
		Type:        op.Type,
		AccountID:   op.AccountID,
		CategoryID:  op.CategoryID,
		Amount:      op.Amount.StringFixed(2),
		Date:        op.Date,
		Description: op.Description,
		Timestamp:   time.Now(),
	}
}

func (e OperationEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func OperationEventFromJSON(data []byte) (OperationEvent, error) {
	var e OperationEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return OperationEvent{}, err
	}
	return e, nil
}
