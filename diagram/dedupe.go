package diagram

import "github.com/erraggy/oas2puml/internal/naming"

// Edge is a directed relation that can be de-duplicated.
type Edge interface {
	EdgeSource() string
	EdgeTarget() string
}

// CompareMode selects which edge fields decide equality in Dedupe.
type CompareMode int

const (
	// TargetOnly treats edges with the same target as duplicates. It
	// collapses the relations of a single interface.
	TargetOnly CompareMode = iota
	// SourceAndTarget treats edges with the same source and target as
	// duplicates. It collapses document-wide relation sets, where different
	// sources may share a target.
	SourceAndTarget
)

// String implements fmt.Stringer.
func (m CompareMode) String() string {
	switch m {
	case TargetOnly:
		return "targetOnly"
	case SourceAndTarget:
		return "sourceAndTarget"
	}
	return "unknown"
}

type edgeKey struct {
	source, target string
}

// Dedupe returns edges without duplicates under mode, keeping the first
// occurrence of each and the original order. Comparison is case-insensitive.
// An edge whose compared fields include an empty string never counts as a
// duplicate.
func Dedupe[E Edge](edges []E, mode CompareMode) []E {
	out := make([]E, 0, len(edges))
	seen := make(map[edgeKey]struct{}, len(edges))
	for _, e := range edges {
		key, ok := dedupeKey(e, mode)
		if ok {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, e)
	}
	return out
}

func dedupeKey(e Edge, mode CompareMode) (edgeKey, bool) {
	target := e.EdgeTarget()
	if target == "" {
		return edgeKey{}, false
	}
	if mode == TargetOnly {
		return edgeKey{target: naming.Fold(target)}, true
	}
	source := e.EdgeSource()
	if source == "" {
		return edgeKey{}, false
	}
	return edgeKey{source: naming.Fold(source), target: naming.Fold(target)}, true
}
