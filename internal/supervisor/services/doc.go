// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

/*
Package services adapts Shopsignal components to suture.Service.

Each wrapper turns a component's lifecycle into the context-aware
Serve(ctx) error form and implements fmt.Stringer so suture can name it in
log events.

  - HTTPServerService: runs ListenAndServe and calls Shutdown with a
    bounded timeout when the context ends.
  - SimilarityWarmService: recomputes the default similarity graph on a
    ticker so dashboards hit a warm cache.
*/
package services
