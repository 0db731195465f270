package enforcer

import (
	"context"
	"path"
	"strings"

	"github.com/CameronXie/sap-api-layer/internal/decisionmaker"
)

type Enforcer interface {
	Enforce(ctx context.Context, req *AccessRequest) (bool, error)
}

// AccessRequest asks whether Subject may perform Action (the HTTP method) on Resource (the route path).
type AccessRequest struct {
	Subject  string
	Resource string
	Action   string
}

type enforcer struct {
	decisionMaker decisionmaker.DecisionMaker
}

// Enforce asks the decision maker with every field lower-cased. Policies list routes as
// "/api/getpurchaseorder" and subjects as they appear in the Authorization header, in any case.
func (e *enforcer) Enforce(ctx context.Context, req *AccessRequest) (bool, error) {
	return e.decisionMaker.MakeDecision(
		ctx,
		&decisionmaker.DecisionRequest{
			Subject:  strings.ToLower(strings.TrimSpace(req.Subject)),
			Resource: normalizeResource(req.Resource),
			Action:   strings.ToLower(req.Action),
		},
	)
}

// normalizeResource maps "/API//GetPurchaseOrder/" and "/api/GetPurchaseOrder" to the same policy key.
func normalizeResource(resource string) string {
	if resource == "" {
		return "/"
	}

	return strings.ToLower(path.Clean("/" + resource))
}

func NewEnforcer(decisionMaker decisionmaker.DecisionMaker) Enforcer {
	return &enforcer{decisionMaker: decisionMaker}
}
