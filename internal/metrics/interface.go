package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the core from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	AddGroupFixtures(count int)
	AddBracketMatches(count int)
	IncCategorySkipped()
	IncPointsScored()
	IncSlotConflicts()
	ObserveGenerationDuration(seconds float64)
}
