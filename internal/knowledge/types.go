package knowledge

// Passage is one retrieved chunk of a policy document.
type Passage struct {
	ID      string
	Content string
	Source  string
	Score   float64
}

// Document is a whole policy text before chunking.
type Document struct {
	Source  string
	Content string
}

// Answer is a generated reply and the passages it was generated from,
// joined into one block of text.
type Answer struct {
	Text    string
	Sources string
}

// Graded is an answer with its strength verdict.
type Graded struct {
	Answer  string
	Sources string
	IsWeak  bool
}
