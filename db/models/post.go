package models

import (
	"context"
	"fmt"
	"time"

	"github.com/getAlby/lnpaywall/common"
	"github.com/uptrace/bun"
)

// Post : Post Model
type Post struct {
	bun.BaseModel `bun:"table:posts"`

	ID        string       `json:"id" bun:",pk"`
	Title     string       `json:"title" bun:",notnull"`
	Summary   string       `json:"summary"`
	Content   string       `json:"content,omitempty"`
	Price     int64        `json:"price" bun:",notnull"`
	Published bool         `json:"published" bun:",notnull"`
	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}

func (p *Post) Ref() ResourceRef {
	return ResourceRef{Kind: common.ResourceTypePost, ID: p.ID}
}

func (p *Post) Cost() int64 {
	return p.Price
}

func (p *Post) IsPublished() bool {
	return p.Published
}

func (p *Post) InvoiceMemo() string {
	if p.Title == "" {
		return ""
	}
	return fmt.Sprintf("buy %s : %s", p.ID, p.Title)
}

// Posts are bought once and stay readable.
func (p *Post) ComputeValidUntil(settledAt time.Time) (time.Time, bool) {
	return time.Time{}, false
}

// Teaser hides the paid content.
func (p *Post) Teaser() *Post {
	teaser := *p
	teaser.Content = ""
	return &teaser
}

func (p *Post) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var (
	_ Resource                  = (*Post)(nil)
	_ bun.BeforeAppendModelHook = (*Post)(nil)
)
