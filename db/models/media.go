package models

import (
	"context"
	"fmt"
	"time"

	"github.com/getAlby/lnpaywall/common"
	"github.com/uptrace/bun"
)

// Media : Media Model
type Media struct {
	bun.BaseModel `bun:"table:media"`

	ID                    string       `json:"id" bun:",pk"`
	Title                 string       `json:"title" bun:",notnull"`
	Description           string       `json:"description"`
	FileName              string       `json:"file_name" bun:",notnull"`
	AbsolutePath          string       `json:"-" bun:",notnull"`
	Price                 int64        `json:"price" bun:",notnull"`
	Published             bool         `json:"published" bun:",notnull"`
	AccessDurationMinutes *int64       `json:"access_duration_minutes,omitempty"`
	CreatedAt             time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt             bun.NullTime `json:"updated_at"`
}

func (m *Media) Ref() ResourceRef {
	return ResourceRef{Kind: common.ResourceTypeMedia, ID: m.ID}
}

func (m *Media) Cost() int64 {
	return m.Price
}

func (m *Media) IsPublished() bool {
	return m.Published
}

func (m *Media) InvoiceMemo() string {
	if m.Title == "" {
		return ""
	}
	return fmt.Sprintf("Buy file \"%s\" with uuid: %s", m.Title, m.ID)
}

func (m *Media) ComputeValidUntil(settledAt time.Time) (time.Time, bool) {
	if m.AccessDurationMinutes == nil {
		return time.Time{}, false
	}
	return settledAt.Add(time.Duration(*m.AccessDurationMinutes) * time.Minute), true
}

func (m *Media) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		m.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var (
	_ Resource                  = (*Media)(nil)
	_ bun.BeforeAppendModelHook = (*Media)(nil)
)
