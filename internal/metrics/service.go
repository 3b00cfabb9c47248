package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GroupFixtures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_group_fixtures_generated_total",
			Help: "The total number of group-stage fixtures generated.",
		}),
		BracketMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_bracket_matches_generated_total",
			Help: "The total number of knockout bracket matches generated.",
		}),
		CategoriesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_categories_skipped_total",
			Help: "The total number of categories skipped during generation for lack of entrants.",
		}),
		PointsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_points_scored_total",
			Help: "The total number of point updates applied by the scoring engine.",
		}),
		SlotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_bracket_slot_conflicts_total",
			Help: "The total number of winner advancements rejected because both next-match slots were taken.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tourney_generation_duration_seconds",
			Help:    "The duration of fixture and bracket generation runs.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	reg.MustRegister(
		s.GroupFixtures,
		s.BracketMatches,
		s.CategoriesSkipped,
		s.PointsScored,
		s.SlotConflicts,
		s.GenerationDuration,
	)

	return s
}

func (s *Service) AddGroupFixtures(count int) {
	s.GroupFixtures.Add(float64(count))
}

func (s *Service) AddBracketMatches(count int) {
	s.BracketMatches.Add(float64(count))
}

func (s *Service) IncCategorySkipped() {
	s.CategoriesSkipped.Inc()
}

func (s *Service) IncPointsScored() {
	s.PointsScored.Inc()
}

func (s *Service) IncSlotConflicts() {
	s.SlotConflicts.Inc()
}

func (s *Service) ObserveGenerationDuration(seconds float64) {
	s.GenerationDuration.Observe(seconds)
}
