package openai

// ChatModel identifies an OpenAI chat model.
type ChatModel string

// String returns the model identifier.
func (m ChatModel) String() string { return string(m) }

// Chat models.
const (
	ChatModelGPT4Turbo ChatModel = "gpt-4-turbo-preview"
	ChatModelGPT4o     ChatModel = "gpt-4o"
	ChatModelGPT4oMini ChatModel = "gpt-4o-mini"
)

// DefaultChatModel is used when no model is configured.
const DefaultChatModel = ChatModelGPT4Turbo
