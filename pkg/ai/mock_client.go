package ai

import "fmt"

type mockClient struct{}

// NewMock is the fallback used when no LLM endpoint is configured.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Answer(query, context string) (string, error) {
	if context == "" {
		return "No indexed documents match this question yet.", nil
	}
	return fmt.Sprintf("(mock) Based on the indexed documents:\n\n%.500s", context), nil
}
