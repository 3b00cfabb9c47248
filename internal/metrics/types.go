package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	GroupFixtures      prometheus.Counter
	BracketMatches     prometheus.Counter
	CategoriesSkipped  prometheus.Counter
	PointsScored       prometheus.Counter
	SlotConflicts      prometheus.Counter
	GenerationDuration prometheus.Histogram
}
