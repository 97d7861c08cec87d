package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Battle Metrics
var (
	BattlesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesCreated,
			Help: HelpTextBattlesCreated,
		},
		[]string{LabelMode},
	)

	BattleJoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattleJoins,
			Help: HelpTextBattleJoins,
		},
		[]string{LabelBot},
	)

	BattlesFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesFinished,
			Help: HelpTextBattlesFinished,
		},
		[]string{LabelMode},
	)

	SettlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSettlementDuration,
			Help:    HelpTextSettlementDuration,
			Buckets: SettlementBuckets,
		},
		[]string{LabelMode},
	)

	StartRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStartRejections,
			Help: HelpTextStartRejections,
		},
		[]string{LabelReason},
	)

	CardsDrawn = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCardsDrawn,
			Help: HelpTextCardsDrawn,
		},
	)

	DrawnValue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDrawnValue,
			Help: HelpTextDrawnValue,
		},
	)

	PrizesPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePrizesPaid,
			Help: HelpTextPrizesPaid,
		},
	)

	LobbiesExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLobbiesExpired,
			Help: HelpTextLobbiesExpired,
		},
	)
)
