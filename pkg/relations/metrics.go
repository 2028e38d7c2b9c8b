package relations

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/vigie-app/vigie/backend/pkg/common"
)

// InfluenceScore measures how present a country is in the network: the
// mean absolute strength over all records involving it, or 0 when the
// country appears in none.
func (e *Engine) InfluenceScore(country string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	sum := 0.0
	count := 0
	for _, record := range e.records {
		if !slices.Contains(record.Countries, country) {
			continue
		}
		sum += math.Abs(record.CurrentStrength)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// NetworkMetrics summarizes the current network. On an empty network all
// counts and the average are zero; LastAnalysis is always the time of the
// call.
func (e *Engine) NetworkMetrics() common.NetworkMetrics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	metrics := common.NetworkMetrics{
		LastAnalysis: time.Now(),
	}
	if len(e.records) == 0 {
		return metrics
	}

	sum := 0.0
	for _, record := range e.records {
		sum += math.Abs(record.CurrentStrength)
	}

	metrics.TotalCountries = len(e.countries)
	metrics.TotalRelations = len(e.records)
	metrics.AvgStrength = sum / float64(len(e.records))
	return metrics
}

// Countries lists every country that entered the network, sorted.
func (e *Engine) Countries() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	countries := make([]string, 0, len(e.countries))
	for c := range e.countries {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// CrisisRelations returns detached copies of all records classified as
// conflict, most degraded first. The type is the one frozen at the
// record's creation, so a pair stays in the crisis view even if later
// articles soften its strength.
func (e *Engine) CrisisRelations() []common.RelationRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var crisis []common.RelationRecord
	for _, record := range e.records {
		if record.Type == common.RelationConflict {
			crisis = append(crisis, cloneRecord(record))
		}
	}
	sort.Slice(crisis, func(i, j int) bool {
		return crisis[i].CurrentStrength < crisis[j].CurrentStrength
	})
	return crisis
}
