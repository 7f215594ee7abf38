package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var dispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "contractplus_notifications_total",
	Help: "Total number of notification dispatch attempts by outcome.",
}, []string{"status"})
