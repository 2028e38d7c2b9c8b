package relations

import (
	"sort"
	"time"

	"github.com/vigie-app/vigie/backend/pkg/common"
)

// canonicalKey builds the order-independent identifier for a country pair,
// so (A,B) and (B,A) address the same record.
func canonicalKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}

// updateNetwork merges one article's relations into the network.
//
// All resulting records are computed first and committed in one pass at the
// end, so a failure while computing leaves the network untouched. Merging
// an existing record averages its strength with the incoming one; type and
// confidence keep the values from the record's first observation.
func (e *Engine) updateNetwork(relations []common.Relation, article common.Article) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	type stagedRecord struct {
		key    string
		record *common.RelationRecord
	}
	staged := make([]stagedRecord, 0, len(relations))

	for _, rel := range relations {
		key := canonicalKey(rel.Countries[0], rel.Countries[1])

		existing, ok := e.records[key]
		if !ok {
			staged = append(staged, stagedRecord{key: key, record: &common.RelationRecord{
				Countries:       append([]string{}, rel.Countries...),
				CurrentStrength: rel.Strength,
				Type:            rel.Type,
				Confidence:      rel.Confidence,
				Evidence:        []common.Evidence{rel.Evidence},
				Evolution:       []common.StrengthPoint{{Timestamp: now, Strength: rel.Strength}},
				LastUpdated:     now,
			}})
			continue
		}

		// Two-point running average: each observation halves the weight
		// of the whole prior history. Not a cumulative mean.
		merged := *existing
		merged.CurrentStrength = (existing.CurrentStrength + rel.Strength) / 2
		merged.Evidence = append(append([]common.Evidence{}, existing.Evidence...), rel.Evidence)
		merged.Evolution = append(append([]common.StrengthPoint{}, existing.Evolution...), common.StrengthPoint{
			Timestamp: now,
			Strength:  merged.CurrentStrength,
		})
		merged.LastUpdated = now
		trimHistory(&merged, e.historyLimit)

		staged = append(staged, stagedRecord{key: key, record: &merged})
	}

	for _, s := range staged {
		e.records[s.key] = s.record
	}
	for _, rel := range relations {
		e.countries[rel.Countries[0]] = struct{}{}
		e.countries[rel.Countries[1]] = struct{}{}
	}
}

// trimHistory drops the oldest entries beyond limit. Evidence and
// evolution are trimmed together so their lengths stay equal.
func trimHistory(record *common.RelationRecord, limit int) {
	if limit <= 0 || len(record.Evolution) <= limit {
		return
	}
	record.Evidence = append([]common.Evidence{}, record.Evidence[len(record.Evidence)-limit:]...)
	record.Evolution = append([]common.StrengthPoint{}, record.Evolution[len(record.Evolution)-limit:]...)
}

// Snapshot returns a copy of every relation record, sorted by pair key.
// The copies are detached from the live network and safe to hold.
func (e *Engine) Snapshot() []common.RelationRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	records := make([]common.RelationRecord, 0, len(e.records))
	for _, record := range e.records {
		records = append(records, cloneRecord(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return canonicalKey(records[i].Countries[0], records[i].Countries[1]) <
			canonicalKey(records[j].Countries[0], records[j].Countries[1])
	})
	return records
}

func cloneRecord(record *common.RelationRecord) common.RelationRecord {
	clone := *record
	clone.Countries = append([]string{}, record.Countries...)
	clone.Evidence = append([]common.Evidence{}, record.Evidence...)
	clone.Evolution = append([]common.StrengthPoint{}, record.Evolution...)
	return clone
}
