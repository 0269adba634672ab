package support

const (
	LogPrefixRoute           = "internal.support.Route"
	LogPrefixResume          = "internal.support.Resume"
	LogPrefixGetConversation = "internal.support.GetConversation"
)

// Confidences assigned by the router. Branches not listed pass the
// resolved intent's confidence through.
const (
	ConfidencePolicyAnswered     = 0.9
	ConfidenceRefundPolicyAnswer = 0.85
	ConfidenceNeedsClarification = 0.5
	ConfidenceInternalError      = 0.0
	ConfidenceHumanDecision      = 1.0
)

// User facing texts
const (
	MsgPolicyClarify   = "Could you share a few more details, such as the item, its condition, and when you received it?"
	MsgRefundClarify   = "To check whether a refund applies, could you describe the item's condition (unused, opened, or damaged)?"
	MsgMissingOrderID  = "Please provide your order ID (e.g., ORD123)."
	MsgRefundApproval  = "I understand you’re requesting a refund. This requires approval from a human support agent."
	MsgRefundApproved  = "Refund approved, will be processed."
	MsgRefundDenied    = "Refund denied."
	MsgFallback        = "I can help with return policies or order status. How can I assist you?"
	MsgEscalated       = "This issue has been escalated to a human support agent."
	MsgInvalidRequest  = "No query provided."
	MsgInternalError   = "Sorry, something went wrong on our side. Please try again in a moment."
	CombinedTextFormat = "%s The item details are: %s"
)

// Refund disambiguation phrases, matched lower case as whole words.
// Request phrases win over question starters; action verbs only count when
// the text does not open as a question.
var (
	RefundRequestPhrases = []string{
		"i want",
		"i would like",
		"i'd like",
		"refund my",
		"give me my money back",
	}
	RefundActionVerbs = []string{
		"process",
		"initiate",
		"start a refund",
		"issue a refund",
	}
	RefundQuestionStarters = []string{
		"can i",
		"could i",
		"is it",
		"is there",
		"does",
		"do you",
		"how",
		"what",
		"when",
		"am i",
		"will i",
	}
)
