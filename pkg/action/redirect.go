package action

import (
	"github.com/rzarajczyk/actions-server/internal/matching"
	"github.com/rzarajczyk/actions-server/pkg/response"
)

// Redirect answers requests of any method on From with a 301 to To.
type Redirect struct {
	From string
	To   string
}

// NewRedirect creates a Redirect action.
func NewRedirect(from, to string) *Redirect {
	return &Redirect{From: from, To: to}
}

// Match implements Action.
func (a *Redirect) Match(req *Request) bool {
	return matching.MatchExact(a.From, req.Path)
}

// Handle implements Action.
func (a *Redirect) Handle(*Request) (response.Response, error) {
	return response.NewRedirect(a.To), nil
}
