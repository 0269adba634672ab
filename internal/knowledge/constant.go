package knowledge

const (
	LogPrefixAnswer = "internal.knowledge.Answer"
	LogPrefixIngest = "internal.knowledge.Ingest"
	LogPrefixGrade  = "internal.knowledge.GradedAnswer"
)

// NotEnoughInformation is the exact refusal the answer prompt asks for.
const NotEnoughInformation = "I don't have enough information to answer that."

// weakPhrases mark refusals or hedging. Matched lower case.
var weakPhrases = []string{
	"i don't have enough information",
	"i am not sure",
	"i'm not sure",
	"cannot determine",
	"insufficient information",
}

const (
	DefaultTopK         = 3
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
	AnswerTemperature   = 0.0
	AnswerMaxTokens     = 512
)

const PromptAnswerSystem = `You are a customer support assistant.

RULES (must follow strictly):
- Answer ONLY using the context below.
- Do NOT add general knowledge.
- Do NOT add explanations.
- Do NOT add suggestions.
- If the context does not fully answer the question, reply with EXACTLY:
"` + NotEnoughInformation + `"
- Do not say anything else after that sentence.`

const PromptAnswerUser = `Context:
%s

Question:
%s`
