package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	groupFixtures       int
	bracketMatches      int
	categoriesSkipped   int
	pointsScored        int
	slotConflicts       int
	generationDurations []float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		generationDurations: make([]float64, 0),
	}
}

func (m *Mock) AddGroupFixtures(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groupFixtures += count
}

func (m *Mock) AddBracketMatches(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bracketMatches += count
}

func (m *Mock) IncCategorySkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categoriesSkipped++
}

func (m *Mock) IncPointsScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pointsScored++
}

func (m *Mock) IncSlotConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slotConflicts++
}

func (m *Mock) ObserveGenerationDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationDurations = append(m.generationDurations, seconds)
}

// GroupFixtures returns the total recorded by AddGroupFixtures.
func (m *Mock) GroupFixtures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groupFixtures
}

// BracketMatches returns the total recorded by AddBracketMatches.
func (m *Mock) BracketMatches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bracketMatches
}

// CategoriesSkipped returns the number of IncCategorySkipped calls.
func (m *Mock) CategoriesSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categoriesSkipped
}

// PointsScored returns the number of IncPointsScored calls.
func (m *Mock) PointsScored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointsScored
}

// SlotConflicts returns the number of IncSlotConflicts calls.
func (m *Mock) SlotConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slotConflicts
}

// GenerationDurations returns the observed generation durations.
func (m *Mock) GenerationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.generationDurations...)
}
