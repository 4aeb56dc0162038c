// Companydesk - Company Directory Browsing Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/companydesk

// Package logging provides the process-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.CtxWarn(ctx).Int("status", 502).Msg("Upstream returned error status")
//
// # Request Context
//
// The API middleware stores a request ID (UUIDv4, or the client's
// X-Request-ID) and a short correlation ID in the request context. Ctx and
// the CtxDebug/CtxInfo/CtxWarn/CtxErr helpers attach both to every entry so a
// single browse call can be followed from handler to upstream client.
//
// # Secrets and Client Input
//
// Upstream parameters include database credentials. Use RedactParams before
// logging a parameter map and SanitizeLogValue for any free-text value that
// came from a client. Cache keys embed the credentials verbatim and are never
// logged.
//
// # slog Bridge
//
// SlogHandler adapts zerolog to log/slog for libraries that only speak slog,
// such as sutureslog in the supervisor tree.
package logging
