// Package steps provides step definitions and dependency validation for the
// usage generation pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names.
const (
	LoadReports    = "load_reports"
	ParseRanking   = "parse_ranking"
	ParseMovesets  = "parse_movesets"
	MergeRecords   = "merge_records"
	WriteOutput    = "write_output"
	ValidateOutput = "validate_output"
)

// Step categories.
const (
	CategoryIngestion = "ingestion"
	CategoryParsing   = "parsing"
	CategoryOutput    = "output"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	LoadReports: {
		Name:         LoadReports,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	ParseRanking: {
		Name:         ParseRanking,
		Category:     CategoryParsing,
		Dependencies: []string{LoadReports},
	},
	ParseMovesets: {
		Name:         ParseMovesets,
		Category:     CategoryParsing,
		Dependencies: []string{LoadReports},
	},
	MergeRecords: {
		Name:         MergeRecords,
		Category:     CategoryParsing,
		Dependencies: []string{ParseRanking, ParseMovesets},
	},
	WriteOutput: {
		Name:         WriteOutput,
		Category:     CategoryOutput,
		Dependencies: []string{MergeRecords},
	},
	ValidateOutput: {
		Name:         ValidateOutput,
		Category:     CategoryOutput,
		Dependencies: []string{WriteOutput},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks that every dependency of stepName is in completed.
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// GetAvailableSteps returns the steps not yet completed whose dependencies are met, sorted by name.
func GetAvailableSteps(completed map[string]bool) []string {
	var available []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// GetBlockedSteps returns the steps whose dependencies are not met, sorted by name.
func GetBlockedSteps(completed map[string]bool) []string {
	var blocked []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(completed, stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}

// Order returns every step in an order that satisfies all dependencies.
// Steps that become available together are ordered by name.
func Order() []string {
	completed := make(map[string]bool, len(StepRegistry))
	order := make([]string, 0, len(StepRegistry))
	for len(order) < len(StepRegistry) {
		available := GetAvailableSteps(completed)
		if len(available) == 0 {
			break
		}
		for _, stepName := range available {
			completed[stepName] = true
			order = append(order, stepName)
		}
	}
	return order
}
