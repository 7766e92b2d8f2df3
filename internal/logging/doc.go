// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package logging provides the process-wide zerolog logger.

JSON output is the default; the console format is for local development.
Request handlers log through Ctx so every line carries the request id set
by the request-id middleware:

	logging.Ctx(r.Context()).Info().Str("adid", adid).Msg("coupon issued")

Long-lived components take a zerolog.Logger by value and derive a child
with a component field:

	logger := logging.WithComponent("similarity")

Libraries that only accept *slog.Logger, such as sutureslog, get one from
NewSlogLogger, which forwards records to the same zerolog output.

Client-supplied strings (advertising ids, product names, error text echoed
from request bodies) go through Sanitize before they reach a log line.

# Configuration

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)
*/
package logging
