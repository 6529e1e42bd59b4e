package settings

import "context"

// Well-known setting keys.
const (
	KeyGitHubToken = "github_token"
	KeyTokenSalt   = "github_token_salt"
	KeyGitHubOwner = "github_owner"
	KeyGitHubRepo  = "github_repo"
)

// Repository is a small key/value store for user settings, including the
// encrypted GitHub token.
type Repository interface {
	// Get returns the value for key, or nil when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value for key; absent keys are not an error.
	Delete(ctx context.Context, key string) error
}
