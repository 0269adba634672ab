package intent

// Log prefixes
const (
	LogPrefixClassify = "internal.intent.Classify"
	LogPrefixResolve  = "internal.intent.Resolve"
)

// Classifier prompt
const (
	PromptClassifierSystem = `You are an intent detection system for customer support.

Identify ALL relevant intents in the user message, not only the strongest one.
Possible intents:
- POLICY: questions about return, refund, shipping or warranty rules
- ORDER_STATUS: where an order is, delivery delays, tracking
- REFUND: the user asks for money back or to start a refund
- OTHER: greetings, complaints, anything else

Return ONLY valid JSON in this format:
{
  "intents": [
    {"intent": "<INTENT>", "confidence": <0-1>, "reason": "<why>"}
  ]
}

Give each intent an independent confidence. Explicit requests get higher confidence.`

	PromptClassifierExamples = `User: "I want a refund for my order ORD123"
Output: {"intents": [{"intent": "REFUND", "confidence": 0.98, "reason": "explicit refund request with order id"}]}

User: "My package is late and I'm angry"
Output: {"intents": [{"intent": "ORDER_STATUS", "confidence": 0.85, "reason": "asks about a delayed order"}, {"intent": "OTHER", "confidence": 0.5, "reason": "expresses anger"}]}

User: "Can I return a damaged item?"
Output: {"intents": [{"intent": "POLICY", "confidence": 0.92, "reason": "asks about return eligibility"}]}`
)

// Classifier configuration
const (
	ClassifierTemperature = 0.0
	ClassifierMaxTokens   = 512
)

// Fallback when the classifier gives nothing usable
const (
	FallbackLabel            = LabelOther
	FallbackConfidence       = 0.3
	ReasonUnparseable        = "unparseable classifier output"
	ReasonClassifierDown     = "classifier unavailable"
	RationaleFormat          = "chosen %s by priority (%d) and confidence (%.2f)"
	ErrMsgEmptyCandidateList = "classifier returned no candidates"
)
