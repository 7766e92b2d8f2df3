// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package validation validates decoded request bodies with
go-playground/validator v10.

A single validator instance is shared process-wide; it caches struct
metadata and is safe for concurrent use. Field names in errors are taken
from json tags and include the path into slices, so a bad event type in an
SDK batch reports as "events[2].eventType" rather than "EventType".

# Custom Tags

  - eventtype: the value is one of view_start, view, view_end or click

# Error Format

ValidateStruct returns *RequestValidationError. ToAPIError converts it into
the VALIDATION_ERROR shape used by the HTTP envelope:

	{"code": "VALIDATION_ERROR", "message": "adid is required", "details": {"field": "adid", ...}}
*/
package validation
