package streak

import "context"

// StreakAPIClient defines the interface for Streak API operations.
// This interface enables consumers to create mock implementations for testing.
//
// All methods mirror the corresponding methods in Client.
//
// Example usage with testify/mock:
//
//	type MockClient struct {
//	    mock.Mock
//	}
//
//	func (m *MockClient) GetBox(ctx context.Context, boxKey string) (*streak.Box, error) {
//	    args := m.Called(ctx, boxKey)
//	    return args.Get(0).(*streak.Box), args.Error(1)
//	}
//
//nolint:revive // StreakAPIClient is intentionally explicit to avoid confusion with Client struct
type StreakAPIClient interface {
	// Pipelines operations

	// ListPipelines retrieves every pipeline visible to the API key's user.
	ListPipelines(ctx context.Context) ([]Pipeline, error)

	// GetPipeline retrieves one pipeline by key.
	GetPipeline(ctx context.Context, pipelineKey string) (*Pipeline, error)

	// Boxes operations

	// ListBoxes retrieves the boxes of a pipeline. params may be nil.
	ListBoxes(ctx context.Context, pipelineKey string, params *ListBoxesParams) ([]Box, error)

	// GetBox retrieves one box by key.
	GetBox(ctx context.Context, boxKey string) (*Box, error)

	// Contacts operations

	// GetContact retrieves one contact by key.
	GetContact(ctx context.Context, contactKey string) (*Contact, error)

	// Search operations

	// Search searches boxes, contacts and organizations.
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}
