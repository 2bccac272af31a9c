package permissions

import (
	"net/http"

	"yamdb-api/models"
)

// Kind names a protected resource family.
type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
	KindTitle    Kind = "title"
	KindReview   Kind = "review"
	KindComment  Kind = "comment"
)

// Decision is the outcome of an authorization check. MethodNotSupported
// is a routing-level failure, distinct from Deny: it maps to 405, not
// 403, and no role bypasses it.
type Decision int

const (
	Deny Decision = iota
	Allow
	MethodNotSupported
)

// Predicate grants access for one class of caller. Any matching
// predicate in a rule is sufficient.
type Predicate int

const (
	// Anyone admits every caller including anonymous ones.
	Anyone Predicate = iota
	// Authenticated admits any known, non-anonymous caller.
	Authenticated
	// Admin admits superusers and callers with the admin role.
	Admin
	// AuthorOrModeratorOrAdmin admits the resource owner, moderators,
	// staff, admins and superusers.
	AuthorOrModeratorOrAdmin
)

// policy is the static permission table. A method absent from a row is
// unsupported for that resource and yields MethodNotSupported.
var policy = map[Kind]map[string][]Predicate{
	KindCategory: {
		http.MethodGet:    {Anyone},
		http.MethodPost:   {Admin},
		http.MethodDelete: {Admin},
	},
	KindGenre: {
		http.MethodGet:    {Anyone},
		http.MethodPost:   {Admin},
		http.MethodDelete: {Admin},
	},
	KindTitle: {
		http.MethodGet:    {Anyone},
		http.MethodPost:   {Admin},
		http.MethodPatch:  {Admin},
		http.MethodDelete: {Admin},
	},
	KindReview: {
		http.MethodGet:    {Anyone},
		http.MethodPost:   {Authenticated},
		http.MethodPatch:  {AuthorOrModeratorOrAdmin},
		http.MethodDelete: {AuthorOrModeratorOrAdmin},
	},
	KindComment: {
		http.MethodGet:    {Anyone},
		http.MethodPost:   {Authenticated},
		http.MethodPatch:  {AuthorOrModeratorOrAdmin},
		http.MethodDelete: {AuthorOrModeratorOrAdmin},
	},
}

// Authorize evaluates the policy table for one request. caller is nil
// for anonymous requests; owner is the resource author where the rule
// is ownership-aware, nil otherwise. Pure function, no side effects,
// safe for unlimited concurrent use.
func Authorize(kind Kind, method string, caller, owner *models.User) Decision {
	rule, ok := policy[kind][method]
	if !ok {
		return MethodNotSupported
	}

	for _, pred := range rule {
		if holds(pred, caller, owner) {
			return Allow
		}
	}
	return Deny
}

func holds(pred Predicate, caller, owner *models.User) bool {
	switch pred {
	case Anyone:
		return true
	case Authenticated:
		return caller != nil
	case Admin:
		return caller != nil && caller.IsAdmin()
	case AuthorOrModeratorOrAdmin:
		if caller == nil {
			return false
		}
		if owner != nil && caller.ID == owner.ID {
			return true
		}
		return caller.IsModerator() || caller.IsAdmin()
	}
	return false
}
