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

// Task Metrics
var (
	TasksStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksStarted,
			Help: HelpTextTasksStarted,
		},
		[]string{LabelType},
	)

	TasksClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTasksClaimed,
			Help: HelpTextTasksClaimed,
		},
		[]string{LabelType},
	)

	CraftOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftOutcomes,
			Help: HelpTextCraftOutcomes,
		},
		[]string{LabelStatus},
	)

	AdventuresClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAdventuresClaimed,
			Help: HelpTextAdventuresClaimed,
		},
		[]string{LabelTier},
	)
)

// Economy Metrics
var (
	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelItem},
	)

	GoldEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldEarned,
			Help: HelpTextGoldEarned,
		},
	)

	GoldSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoldSpent,
			Help: HelpTextGoldSpent,
		},
	)

	GuildPromotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGuildPromotions,
			Help: HelpTextGuildPromotions,
		},
	)

	ShopRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShopRefreshes,
			Help: HelpTextShopRefreshes,
		},
	)
)
