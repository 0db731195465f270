package main

import (
	"log/slog"

	"github.com/CameronXie/sap-api-layer/internal/authn"
	"github.com/CameronXie/sap-api-layer/internal/config"
	"github.com/CameronXie/sap-api-layer/internal/keyfetcher"
)

// newAuthenticator builds the caller authenticator. Without a policy engine or a bearer key the
// identity is informational only, so unreadable credentials pass through for the backend to judge.
func newAuthenticator(cfg *config.Config, logger *slog.Logger) authn.Authenticator {
	var opts []authn.Option

	if cfg.AuthConfig.BearerPublicKey != "" {
		logger.Info("bearer_verification_enabled", "public_key", cfg.AuthConfig.BearerPublicKey)
		opts = append(opts, authn.WithBearerVerification(keyfetcher.FromFile(cfg.AuthConfig.BearerPublicKey)))
	}

	engine := cfg.PolicyConfig.Engine
	if cfg.AuthConfig.BearerPublicKey == "" && (engine == config.PolicyEngineNone || engine == "") {
		opts = append(opts, authn.WithAnonymousFallback())
	}

	return authn.NewHeaderAuthenticator(opts...)
}
