package grammar

import (
	"log/slog"
	"sync"

	"github.com/prosecheck/prosecheck/internal/model"
)

var (
	sharedOnce   sync.Once
	sharedClient *Client
)

// Shared returns the process-wide engine client, creating it on first use.
// The handle lives for the life of the process; later calls ignore their
// arguments and return the first-initialized client. Use NewClient directly
// when an isolated client is needed (tests, multi-endpoint setups).
func Shared(cfg model.GrammarConfig, logger *slog.Logger, opts ...Option) *Client {
	sharedOnce.Do(func() {
		sharedClient = NewClient(cfg, logger, opts...)
	})
	return sharedClient
}
