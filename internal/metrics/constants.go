package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Battle metric names
const (
	MetricNameBattlesCreated     = "battles_created_total"
	MetricNameBattleJoins        = "battle_joins_total"
	MetricNameBattlesFinished    = "battles_finished_total"
	MetricNameSettlementDuration = "battle_settlement_duration_seconds"
	MetricNameStartRejections    = "battle_start_rejections_total"
	MetricNameCardsDrawn         = "battle_cards_drawn_total"
	MetricNameDrawnValue         = "battle_drawn_value_total"
	MetricNamePrizesPaid         = "battle_prizes_paid_total"
	MetricNameLobbiesExpired     = "battle_lobbies_expired_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Battle metric help text
const (
	HelpTextBattlesCreated     = "Total number of battle lobbies opened"
	HelpTextBattleJoins        = "Total number of participants added after creation"
	HelpTextBattlesFinished    = "Total number of settled battles"
	HelpTextSettlementDuration = "Time from draw to committed settlement in seconds"
	HelpTextStartRejections    = "Total number of rejected battle starts"
	HelpTextCardsDrawn         = "Total number of cards pulled in settled battles"
	HelpTextDrawnValue         = "Sum of card values pulled in settled battles"
	HelpTextPrizesPaid         = "Sum of prize money credited to winners"
	HelpTextLobbiesExpired     = "Total number of stale lobbies removed by the sweeper"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelMode   = "mode"
	LabelReason = "reason"
	LabelBot    = "bot"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SettlementBuckets range from 5ms to 30s; settlement is a handful of
// round trips inside one transaction
var SettlementBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
