// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

/*
Package supervisor provides process supervision for Companydesk using suture v4.

Long-running services are organized in a two-layer tree:

	RootSupervisor ("companydesk")
	├── CacheSupervisor ("cache-layer")
	│   └── CacheJanitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure threshold, decay and
backoff. Each layer counts failures on its own, so a janitor crash loop never
backs off the HTTP server.

Supervisor events are logged through sutureslog on a *slog.Logger; main
passes logging.NewSlogLogger() so they reach the same zerolog output as the
rest of the application.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCacheService(services.NewCacheJanitorService(sweeper, cfg.Cache.CleanupInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}
*/
package supervisor
