package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chitieu/internal/core"
)

// TransactionRecordedMessage carries a transaction from the web process to
// the ingest worker. ID doubles as the idempotency key on insert.
type TransactionRecordedMessage struct {
	ID         string    `json:"id"`
	Kind       core.Kind `json:"kind"`
	CategoryID string    `json:"category_id"`
	Amount     int64     `json:"amount"`
	Date       string    `json:"date"`
	Note       string    `json:"note,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewTransactionRecordedMessage wraps tx, assigning a fresh id when tx has none.
func NewTransactionRecordedMessage(tx core.Transaction) *TransactionRecordedMessage {
	id := tx.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &TransactionRecordedMessage{
		ID:         id,
		Kind:       tx.Kind,
		CategoryID: tx.CategoryID,
		Amount:     tx.Amount.Minor,
		Date:       tx.Date.ISO(),
		Note:       tx.Note,
		Timestamp:  time.Now(),
	}
}

func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Transaction converts the message back and validates it.
func (m *TransactionRecordedMessage) Transaction() (core.Transaction, error) {
	d, err := core.ParseDate(m.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", m.Date, err)
	}
	tx := core.Transaction{
		ID:         m.ID,
		Kind:       m.Kind,
		CategoryID: m.CategoryID,
		Amount:     core.Money{Minor: m.Amount},
		Date:       d,
		Note:       m.Note,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// TransactionRecordedMessageFromJSON decodes a message and rejects bodies
// without a valid uuid.
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(msg.ID); err != nil {
		return nil, fmt.Errorf("message id %q: %w", msg.ID, err)
	}
	return &msg, nil
}
