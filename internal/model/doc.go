// Package model defines the data structures shared by the ghprofile pipeline.
//
// # Repository
//
// The [Repository] struct is an immutable snapshot of one repository as
// returned by the listing API:
//
//	type Repository struct {
//	    Name             string        // Unique within the owner's namespace
//	    Owner            string        // Owner login
//	    URL              string        // Canonical web link
//	    DetailURL        string        // API detail endpoint, used for fork lookups
//	    CreatedAt        time.Time     // UTC
//	    UpdatedAt        time.Time     // UTC
//	    Fork             bool
//	    ReportedLanguage string        // Empty when the API reports none
//	    LanguageStats    LanguageStats // nil when not fetched
//	    Parent           string        // owner/name of the upstream, resolved lazily
//	}
//
// # Entry and Page
//
// An [Entry] is a repository with its display attributes resolved. A [Page]
// is a contiguous slice of entries from the creation-sorted sequence.
package model
