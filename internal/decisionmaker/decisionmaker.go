package decisionmaker

import "context"

type DecisionRequest struct {
	Subject  string
	Resource string
	Action   string
}

type DecisionMaker interface {
	MakeDecision(ctx context.Context, req *DecisionRequest) (bool, error)
}

type allowAll struct{}

func (allowAll) MakeDecision(context.Context, *DecisionRequest) (bool, error) {
	return true, nil
}

// NewAllowAll returns a DecisionMaker that permits every request.
func NewAllowAll() DecisionMaker {
	return allowAll{}
}
