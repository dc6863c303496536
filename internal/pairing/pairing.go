package pairing

import (
	"sort"

	"crudeval/internal/canon"
)

// Pair is one entity present in both sets.
type Pair struct {
	Key       string `json:"key"`
	Reference string `json:"reference"`
	Candidate string `json:"candidate"`
}

// Duplicate records an identifier whose key was already taken by an earlier
// identifier of the same set.
type Duplicate struct {
	Key        string `json:"key"`
	Identifier string `json:"identifier"`
	KeptAs     string `json:"kept_as"`
	Side       string `json:"side"`
}

// Sides of a pairing.
const (
	SideReference = "reference"
	SideCandidate = "candidate"
)

// Result lists the pairs sorted by key, plus what could not be paired.
type Result struct {
	Pairs               []Pair      `json:"pairs"`
	UnpairedReferences  []string    `json:"unpaired_references,omitempty"`
	UnpairedCandidates  []string    `json:"unpaired_candidates,omitempty"`
	Duplicates          []Duplicate `json:"duplicates,omitempty"`
	UnidentifiedEntries []string    `json:"unidentified,omitempty"`
}

// Complete reports whether every identifier found a partner.
func (r Result) Complete() bool {
	return len(r.UnpairedReferences) == 0 && len(r.UnpairedCandidates) == 0 && len(r.UnidentifiedEntries) == 0
}

// Match pairs reference and candidate identifiers (typically file names).
// The first identifier of a set wins when several share a key. Identifiers
// whose key is empty never pair.
func Match(references, candidates []string) Result {
	var result Result

	refs, refOrder := index(references, SideReference, &result)
	cands, candOrder := index(candidates, SideCandidate, &result)

	for _, key := range refOrder {
		if cand, ok := cands[key]; ok {
			result.Pairs = append(result.Pairs, Pair{Key: key, Reference: refs[key], Candidate: cand})
			continue
		}
		result.UnpairedReferences = append(result.UnpairedReferences, refs[key])
	}
	for _, key := range candOrder {
		if _, ok := refs[key]; !ok {
			result.UnpairedCandidates = append(result.UnpairedCandidates, cands[key])
		}
	}

	sort.Slice(result.Pairs, func(i, j int) bool { return result.Pairs[i].Key < result.Pairs[j].Key })
	return result
}

func index(ids []string, side string, result *Result) (map[string]string, []string) {
	byKey := make(map[string]string, len(ids))
	order := make([]string, 0, len(ids))
	for _, id := range ids {
		key := canon.BaseIdentifier(id)
		if key == "" {
			result.UnidentifiedEntries = append(result.UnidentifiedEntries, id)
			continue
		}
		if kept, ok := byKey[key]; ok {
			result.Duplicates = append(result.Duplicates, Duplicate{Key: key, Identifier: id, KeptAs: kept, Side: side})
			continue
		}
		byKey[key] = id
		order = append(order, key)
	}
	return byKey, order
}
