package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameTasksStarted      = "tasks_started_total"
	MetricNameTasksClaimed      = "tasks_claimed_total"
	MetricNameCraftOutcomes     = "craft_outcomes_total"
	MetricNameAdventuresClaimed = "adventures_claimed_total"
	MetricNameItemsBought       = "items_bought_total"
	MetricNameItemsSold         = "items_sold_total"
	MetricNameGoldEarned        = "gold_earned_total"
	MetricNameGoldSpent         = "gold_spent_total"
	MetricNameGuildPromotions   = "guild_promotions_total"
	MetricNameShopRefreshes     = "shop_refreshes_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextTasksStarted      = "Total number of tasks started"
	HelpTextTasksClaimed      = "Total number of tasks claimed"
	HelpTextCraftOutcomes     = "Total crafting outcomes by status"
	HelpTextAdventuresClaimed = "Total adventures claimed by tier"
	HelpTextItemsBought       = "Total number of items bought from shops"
	HelpTextItemsSold         = "Total number of items sold to shops"
	HelpTextGoldEarned        = "Total gold paid out to players by shops"
	HelpTextGoldSpent         = "Total gold spent by players in shops"
	HelpTextGuildPromotions   = "Total number of guild class promotions"
	HelpTextShopRefreshes     = "Total number of shop stock refreshes"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelTier   = "tier"
	LabelItem   = "item"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
