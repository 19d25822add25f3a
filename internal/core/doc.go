// Package core provides the generation pipeline for ghprofile.
//
// A run is a single linear pass:
//
//  1. [Source.FetchAll] lists every repository of the user
//  2. [Resolver.Resolve] derives the primary language and fork parent
//  3. [SortByCreation] orders entries newest first
//  4. [Paginate] splits them into fixed-size pages
//  5. the render package emits the document
//  6. [Publisher.Publish] writes, commits and pushes it
//
// # Errors
//
// Failures are classified with [KindOf]. A [TransportError] from the
// listing aborts the run unless [Options.AllowPartial] is set. A
// [ResolutionError] never escapes the resolver: it is logged and replaced
// by a sentinel ([model.NoLanguage] or [model.UnknownParent]). A
// [PublishError] is returned to the caller unchanged.
package core
