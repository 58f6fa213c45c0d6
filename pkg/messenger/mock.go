package messenger

import (
	"context"
	"fmt"
)

// MockClient is an in-process messenger for local runs without a bot token.
// Everyone is a member, nobody is an admin, sends go to stdout.
type MockClient struct {
	Name string
}

// NewMockClient creates a new MockClient
func NewMockClient(name string) *MockClient {
	return &MockClient{Name: name}
}

// SendText simulates sending a text message
func (m *MockClient) SendText(ctx context.Context, chatID, text string) error {
	fmt.Printf("[%s Mock Messenger] Simulating SendText to %s: %s\n", m.Name, chatID, text)
	return nil
}

// IsGroupMember always reports membership
func (m *MockClient) IsGroupMember(ctx context.Context, groupID, chatID string) (bool, error) {
	return true, nil
}

// ListGroupAdmins returns an empty admin set
func (m *MockClient) ListGroupAdmins(ctx context.Context, groupID string) ([]string, error) {
	return []string{}, nil
}
