package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paywall_decisions_total",
		Help: "Access decisions by resource kind, outcome and reject reason.",
	}, []string{"kind", "outcome", "reason"})

	invoicesIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paywall_invoices_issued_total",
		Help: "Invoices created on the ledger and recorded.",
	}, []string{"kind"})
)
