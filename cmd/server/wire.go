// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"credential_store_backend/internal/app"
	"credential_store_backend/internal/auth"
	"credential_store_backend/internal/config"
	"credential_store_backend/internal/jobs"
	"credential_store_backend/internal/platform/logger"
	"credential_store_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		provideHasher,
		provideRepository,

		// Credential store
		user.NewCredentialStore,
		user.NewHandler,
		wire.Bind(new(auth.CredentialStore), new(*user.CredentialStore)),
		wire.Bind(new(jobs.RegistryCounter), new(*user.CredentialStore)),

		// Sessions
		auth.NewSessionManager,
		auth.NewHandler,
		wire.Bind(new(jobs.SessionInspector), new(*auth.SessionManager)),

		// Jobs
		jobs.NewRegistryReportJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
