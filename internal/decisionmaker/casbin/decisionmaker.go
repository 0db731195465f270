package casbin

import (
	"context"
	"fmt"
	"os"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/CameronXie/sap-api-layer/internal/decisionmaker"
)

type decisionMaker struct {
	enforcer casbin.IEnforcer
}

// MakeDecision reloads the policy and enforces subject, resource and action against it.
func (d *decisionMaker) MakeDecision(_ context.Context, req *decisionmaker.DecisionRequest) (bool, error) {
	if err := d.enforcer.LoadPolicy(); err != nil {
		return false, fmt.Errorf("failed to load policy: %w", err)
	}

	return d.enforcer.Enforce(req.Subject, req.Resource, req.Action)
}

// NewDecisionMaker creates a DecisionMaker from a Casbin model definition and a policy adapter.
func NewDecisionMaker(config string, policyRepo persist.Adapter) (decisionmaker.DecisionMaker, error) {
	m, err := model.NewModelFromString(config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, policyRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &decisionMaker{enforcer: enforcer}, nil
}

// NewFileDecisionMaker loads the model from modelPath and reads policies from the CSV at policyPath.
func NewFileDecisionMaker(modelPath, policyPath string) (decisionmaker.DecisionMaker, error) {
	config, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read casbin model %s: %w", modelPath, err)
	}

	return NewDecisionMaker(string(config), fileadapter.NewAdapter(policyPath))
}
