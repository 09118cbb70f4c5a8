// Package audit provides the append-only action trail. Records capture who
// did what with a full payload snapshot; writes are best-effort and never
// fail the business operation.
package audit

import (
	"context"
	"time"

	"storeroom/internal/core/id"
)

// Record is one trail row. Payload is the full document as persisted,
// compressed at the storage layer when large.
type Record struct {
	ID       id.ID     `db:"id" json:"id"`
	Action   string    `db:"action" json:"action"`
	Entity   string    `db:"entity" json:"entity"`
	EntityID id.ID     `db:"entity_id" json:"entityId"`
	AdminID  string    `db:"admin_id" json:"adminId"`
	Payload  any       `db:"payload" json:"payload"`
	At       time.Time `db:"at" json:"at"`
}

// Recorder persists trail records.
type Recorder interface {
	Record(ctx context.Context, rec *Record) error
}

// NewRecord builds a trail row for an action against an entity.
func NewRecord(action, entity string, entityID id.ID, adminID string, payload any) *Record {
	return &Record{
		ID:       id.New(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		AdminID:  adminID,
		Payload:  payload,
		At:       time.Now(),
	}
}
