package ports

import "context"

// EventPublisher notifies out-of-process collaborators (analytics sync)
// about authentication events.
type EventPublisher interface {
	// PublishLogin publishes a login event for the user. verified reports
	// whether the login was cryptographically verified.
	PublishLogin(ctx context.Context, userID, address string, verified bool) error
}
