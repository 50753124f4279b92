package models

import (
	"time"
)

type ResourceRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

func (ref ResourceRef) String() string {
	return ref.Kind + "/" + ref.ID
}

// Resource is anything that can sit behind the paywall.
type Resource interface {
	Ref() ResourceRef
	Cost() int64
	IsPublished() bool
	// InvoiceMemo is the memo put on invoices for the resource, empty means
	// the configured default.
	InvoiceMemo() string
	// ComputeValidUntil reports when access bought by a payment settled at
	// settledAt ends. The second return value is false for permanent access.
	ComputeValidUntil(settledAt time.Time) (time.Time, bool)
}
