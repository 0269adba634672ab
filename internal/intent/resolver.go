package intent

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"customer-support-agent/pkg/log"
)

// IntentResolver picks one intent from the classifier's candidates.
type IntentResolver struct {
	classifier Classifier
	l          log.Logger
}

var _ Resolver = (*IntentResolver)(nil)

// NewResolver creates a resolver over classifier.
func NewResolver(classifier Classifier, l log.Logger) *IntentResolver {
	return &IntentResolver{classifier: classifier, l: l}
}

// Resolve classifies text once and ranks the result. Classifier failures
// collapse to a single low-confidence OTHER candidate.
func (r *IntentResolver) Resolve(ctx context.Context, text string) Resolution {
	candidates, err := r.classifier.Classify(ctx, text)
	if err != nil {
		reason := ReasonUnparseable
		if errors.Is(err, ErrClassifierUnavailable) {
			reason = ReasonClassifierDown
		}
		r.l.Warnf(ctx, "%s: falling back to %s: %v", LogPrefixResolve, FallbackLabel, err)
		candidates = []Candidate{fallbackCandidate(reason)}
	}
	if len(candidates) == 0 {
		r.l.Warnf(ctx, "%s: %s", LogPrefixResolve, ErrMsgEmptyCandidateList)
		candidates = []Candidate{fallbackCandidate(ReasonUnparseable)}
	}

	res := Rank(candidates)
	r.l.Infof(ctx, "%s: %s", LogPrefixResolve, res.Rationale)
	return res
}

// Rank orders candidates by label priority, then confidence, both
// descending. Equal keys keep their original order. candidates must be
// non-empty and is not modified.
func Rank(candidates []Candidate) Resolution {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].Label.Priority(), ranked[j].Label.Priority()
		if pi != pj {
			return pi > pj
		}
		return ranked[i].Confidence > ranked[j].Confidence
	})

	chosen := ranked[0]
	return Resolution{
		Candidates: ranked,
		Chosen:     chosen,
		Rationale:  fmt.Sprintf(RationaleFormat, chosen.Label, chosen.Label.Priority(), chosen.Confidence),
	}
}

func fallbackCandidate(reason string) Candidate {
	return Candidate{Label: FallbackLabel, Confidence: FallbackConfidence, Reason: reason}
}
