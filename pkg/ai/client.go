package ai

// Client answers a user query given retrieved document context.
type Client interface {
	Answer(query, context string) (string, error)
}
