package compliance

import (
	"fmt"
	"sort"
)

// TableSet is a validated collection of framework tables.
type TableSet struct {
	version    string
	frameworks map[FrameworkID]Framework
}

// NewTableSet validates band ordering and sentinel ceilings and returns an
// immutable table set.
func NewTableSet(version string, frameworks []Framework) (*TableSet, error) {
	ts := &TableSet{
		version:    version,
		frameworks: make(map[FrameworkID]Framework, len(frameworks)),
	}
	for _, fw := range frameworks {
		if fw.ID == "" {
			return nil, fmt.Errorf("framework with empty id")
		}
		if _, exists := ts.frameworks[fw.ID]; exists {
			return nil, fmt.Errorf("duplicate framework id: %s", fw.ID)
		}
		for projectType, bands := range fw.Bands {
			if err := validateBands(bands); err != nil {
				return nil, fmt.Errorf("framework %s, project type %s: %w", fw.ID, projectType, err)
			}
		}
		ts.frameworks[fw.ID] = fw
	}
	return ts, nil
}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("no bands defined")
	}
	for i := 1; i < len(bands); i++ {
		if bands[i].Ceiling <= bands[i-1].Ceiling {
			return fmt.Errorf("band ceilings must be strictly ascending (band %d)", i)
		}
	}
	if !bands[len(bands)-1].Ceiling.IsInf() {
		return fmt.Errorf("last band must carry the inf ceiling sentinel")
	}
	return nil
}

// Version returns the table set version.
func (ts *TableSet) Version() string {
	return ts.version
}

// Framework returns a framework table by id.
func (ts *TableSet) Framework(id FrameworkID) (Framework, bool) {
	fw, ok := ts.frameworks[id]
	return fw, ok
}

// FrameworkIDs lists the frameworks in the set, sorted.
func (ts *TableSet) FrameworkIDs() []FrameworkID {
	ids := make([]FrameworkID, 0, len(ts.frameworks))
	for id := range ts.frameworks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FrameworksFor lists the frameworks that carry bands for a project type,
// sorted.
func (ts *TableSet) FrameworksFor(projectType ProjectType) []FrameworkID {
	var ids []FrameworkID
	for id, fw := range ts.frameworks {
		if _, ok := fw.Bands[projectType]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Evaluator classifies carbon intensity against the injected table set.
// It is stateless and holds no thresholds of its own.
type Evaluator struct {
	tables *TableSet
}

// NewEvaluator creates an evaluator over a table set.
func NewEvaluator(tables *TableSet) *Evaluator {
	return &Evaluator{tables: tables}
}

// Evaluate classifies carbonIntensity (kg CO2-e/m²) for each requested
// framework. Results are returned in request order. Any unknown framework
// or unsupported project type fails the whole evaluation.
func (e *Evaluator) Evaluate(carbonIntensity float64, projectType ProjectType, frameworks []FrameworkID) ([]Result, error) {
	results := make([]Result, 0, len(frameworks))
	for _, id := range frameworks {
		fw, ok := e.tables.Framework(id)
		if !ok {
			return nil, &UnknownFrameworkError{Framework: id}
		}
		bands, ok := fw.Bands[projectType]
		if !ok {
			return nil, &UnsupportedProjectTypeError{Framework: id, ProjectType: projectType}
		}

		verdict := selectBand(bands, carbonIntensity)
		results = append(results, Result{
			Framework:     fw.ID,
			FrameworkName: fw.Name,
			Version:       fw.Version,
			MetricUsed:    fw.Metric,
			MetricValue:   carbonIntensity,
			ProjectType:   projectType,
			Thresholds:    bands,
			Verdict:       verdict,
		})
	}
	return results, nil
}

// selectBand picks the first band whose ceiling is >= the value. The inf
// sentinel on the last band guarantees a match.
func selectBand(bands []Band, value float64) Verdict {
	for _, band := range bands {
		if Ceiling(value) <= band.Ceiling {
			return band.Verdict
		}
	}
	return bands[len(bands)-1].Verdict
}
