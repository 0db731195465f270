package main

import (
	"fmt"
	"log/slog"

	"github.com/CameronXie/sap-api-layer/internal/config"
	"github.com/CameronXie/sap-api-layer/internal/decisionmaker"
	"github.com/CameronXie/sap-api-layer/internal/decisionmaker/casbin"
	"github.com/CameronXie/sap-api-layer/internal/enforcer"

	pdp "github.com/CameronXie/sap-api-layer/internal/decisionmaker/opa"
	pip "github.com/CameronXie/sap-api-layer/internal/infoprovider"
	prp "github.com/CameronXie/sap-api-layer/internal/policyretriever"
)

// newEnforcer builds the access policy enforcer for the configured engine.
func newEnforcer(cfg *config.PolicyConfig, logger *slog.Logger) (enforcer.Enforcer, error) {
	switch cfg.Engine {
	case config.PolicyEngineCasbin:
		logger.Info("initializing enforcer with Casbin", "model", cfg.Model, "policy", cfg.Policy)

		decisionMaker, err := casbin.NewFileDecisionMaker(cfg.Model, cfg.Policy)
		if err != nil {
			return nil, err
		}

		return enforcer.NewEnforcer(decisionMaker), nil
	case config.PolicyEngineOPA:
		logger.Info("initializing enforcer with OPA", "policy", cfg.Policy, "query", cfg.Query)

		return enforcer.NewEnforcer(pdp.NewDecisionMaker(
			prp.NewFilePolicyRetriever(cfg.Policy),
			pip.NewStaticInfoProvider(cfg.Roles),
			cfg.Query,
		)), nil
	case config.PolicyEngineNone, "":
		logger.Info("access policy disabled")

		return enforcer.NewEnforcer(decisionmaker.NewAllowAll()), nil
	default:
		return nil, fmt.Errorf("unknown policy engine %q", cfg.Engine)
	}
}
