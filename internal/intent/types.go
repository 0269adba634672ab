package intent

import "strings"

// Label is the coarse category of a user need.
type Label string

const (
	LabelPolicy      Label = "POLICY"
	LabelOrderStatus Label = "ORDER_STATUS"
	LabelRefund      Label = "REFUND"
	LabelOther       Label = "OTHER"
)

var priorities = map[Label]int{
	LabelRefund:      4,
	LabelOrderStatus: 3,
	LabelPolicy:      2,
	LabelOther:       1,
}

// Priority ranks labels for selection; higher wins. Unknown labels rank 0.
func (l Label) Priority() int {
	return priorities[l]
}

// Valid reports whether l is one of the known labels.
func (l Label) Valid() bool {
	_, ok := priorities[l]
	return ok
}

// ParseLabel normalizes case and surrounding space.
func ParseLabel(s string) (Label, bool) {
	l := Label(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Valid()
}

// Candidate is one plausible intent with its own confidence in [0,1].
type Candidate struct {
	Label      Label   `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// Resolution is the ranked candidate list and the one chosen from it.
// Chosen is always Candidates[0] and Candidates is never empty.
type Resolution struct {
	Candidates []Candidate `json:"candidates"`
	Chosen     Candidate   `json:"chosen"`
	Rationale  string      `json:"rationale"`
}
