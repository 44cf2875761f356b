package resolver

import (
	"context"
	"sync"

	"github.com/UnknownOlympus/locator/internal/models"
)

// Call is the handle of one Suggest invocation. It completes once its
// suggestions were applied, or with ErrSuperseded when a newer call won.
type Call struct {
	token       uint64
	done        chan struct{}
	once        sync.Once
	suggestions []models.Suggestion
	err         error
}

func newCall(token uint64) *Call {
	return &Call{token: token, done: make(chan struct{})}
}

func (c *Call) finish(suggestions []models.Suggestion, err error) {
	c.once.Do(func() {
		c.suggestions = suggestions
		c.err = err
		close(c.done)
	})
}

// Wait blocks until the call completes or ctx is done.
func (c *Call) Wait(ctx context.Context) ([]models.Suggestion, error) {
	select {
	case <-c.done:
		return c.suggestions, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
