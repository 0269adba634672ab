package intent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

type rawCandidate struct {
	Intent     string   `json:"intent"`
	Confidence *float64 `json:"confidence"`
	Reason     string   `json:"reason"`
}

// ParseCandidates reads classifier output into candidates. It accepts the
// {"intents": [...]} envelope, a bare array, or a single object, optionally
// wrapped in a markdown fence or surrounded by prose. Any entry with an
// unknown label or a confidence outside [0,1] rejects the whole output.
func ParseCandidates(output string) ([]Candidate, error) {
	payload := extractJSON(output)
	if payload == "" {
		return nil, fmt.Errorf("%w: no JSON found", ErrUnparseableOutput)
	}

	raws, err := decodeRaw([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseableOutput, err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnparseableOutput, ErrMsgEmptyCandidateList)
	}

	out := make([]Candidate, 0, len(raws))
	for i, r := range raws {
		label, ok := ParseLabel(r.Intent)
		if !ok {
			return nil, fmt.Errorf("%w: candidate %d has unknown intent %q", ErrUnparseableOutput, i, r.Intent)
		}
		if r.Confidence == nil || *r.Confidence < 0 || *r.Confidence > 1 {
			return nil, fmt.Errorf("%w: candidate %d has invalid confidence", ErrUnparseableOutput, i)
		}
		out = append(out, Candidate{Label: label, Confidence: *r.Confidence, Reason: r.Reason})
	}
	return out, nil
}

func decodeRaw(payload []byte) ([]rawCandidate, error) {
	switch {
	case bytes.HasPrefix(payload, []byte("[")):
		var list []rawCandidate
		if err := json.Unmarshal(payload, &list); err != nil {
			return nil, err
		}
		return list, nil
	default:
		var envelope struct {
			Intents *[]rawCandidate `json:"intents"`
		}
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return nil, err
		}
		if envelope.Intents != nil {
			return *envelope.Intents, nil
		}

		var single rawCandidate
		if err := json.Unmarshal(payload, &single); err != nil {
			return nil, err
		}
		if single.Intent == "" {
			return nil, fmt.Errorf("missing intents field")
		}
		return []rawCandidate{single}, nil
	}
}

// extractJSON strips markdown fences, then falls back to the outermost
// brace or bracket span.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if m := fencedJSON.FindStringSubmatch(s); len(m) == 2 {
		s = strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return s
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}
