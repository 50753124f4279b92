package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Payment : one issued payment request for a resource. Rows are never
// deleted, a new invoice supersedes the old row. Only State and ValidUntil
// are rewritten, both are caches of what the ledger reports.
type Payment struct {
	bun.BaseModel `bun:"table:payments"`

	ID           string       `json:"id" bun:",pk"`
	Request      string       `json:"payment_request" bun:",notnull,unique"`
	Hash         string       `json:"payment_hash" bun:",notnull"`
	ResourceType string       `json:"resource_type" bun:",notnull"`
	ResourceID   string       `json:"resource_id" bun:",notnull"`
	Amount       int64        `json:"amount" validate:"gte=0"`
	ExpiresAt    time.Time    `json:"expires_at" bun:",notnull"`
	ValidUntil   bun.NullTime `json:"valid_until" bun:",nullzero"`
	State        string       `json:"state,omitempty" bun:",nullzero"`
	CreatedAt    time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    bun.NullTime `json:"updated_at"`
}

func (p *Payment) Ref() ResourceRef {
	return ResourceRef{Kind: p.ResourceType, ID: p.ResourceID}
}

func (p *Payment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Payment)(nil)
