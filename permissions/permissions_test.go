package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"yamdb-api/models"
)

var (
	owner     = &models.User{ID: 1, Username: "owner", Role: models.RoleUser}
	stranger  = &models.User{ID: 2, Username: "stranger", Role: models.RoleUser}
	moderator = &models.User{ID: 3, Username: "mod", Role: models.RoleModerator}
	admin     = &models.User{ID: 4, Username: "admin", Role: models.RoleAdmin}
	staff     = &models.User{ID: 5, Username: "staff", Role: models.RoleUser, IsStaff: true}
	superuser = &models.User{ID: 6, Username: "root", Role: models.RoleUser, IsSuperuser: true}
)

func TestAuthorize_PolicyTable(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		method string
		caller *models.User
		owner  *models.User
		want   Decision
	}{
		{"anonymous can list categories", KindCategory, http.MethodGet, nil, nil, Allow},
		{"anonymous cannot create category", KindCategory, http.MethodPost, nil, nil, Deny},
		{"plain user cannot create category", KindCategory, http.MethodPost, stranger, nil, Deny},
		{"moderator cannot create category", KindCategory, http.MethodPost, moderator, nil, Deny},
		{"admin creates category", KindCategory, http.MethodPost, admin, nil, Allow},
		{"superuser flag counts as admin", KindCategory, http.MethodPost, superuser, nil, Allow},
		{"admin deletes genre", KindGenre, http.MethodDelete, admin, nil, Allow},
		{"staff flag is not admin", KindGenre, http.MethodDelete, staff, nil, Deny},

		{"anonymous reads titles", KindTitle, http.MethodGet, nil, nil, Allow},
		{"moderator cannot patch title", KindTitle, http.MethodPatch, moderator, nil, Deny},
		{"admin patches title", KindTitle, http.MethodPatch, admin, nil, Allow},
		{"admin deletes title", KindTitle, http.MethodDelete, admin, nil, Allow},

		{"anonymous cannot post review", KindReview, http.MethodPost, nil, nil, Deny},
		{"authenticated posts review", KindReview, http.MethodPost, stranger, nil, Allow},
		{"author patches own review", KindReview, http.MethodPatch, owner, owner, Allow},
		{"stranger cannot patch review", KindReview, http.MethodPatch, stranger, owner, Deny},
		{"moderator patches any review", KindReview, http.MethodPatch, moderator, owner, Allow},
		{"staff flag patches any review", KindReview, http.MethodPatch, staff, owner, Allow},
		{"admin deletes any review", KindReview, http.MethodDelete, admin, owner, Allow},
		{"anonymous cannot delete review", KindReview, http.MethodDelete, nil, owner, Deny},

		{"author deletes own comment", KindComment, http.MethodDelete, owner, owner, Allow},
		{"stranger cannot delete comment", KindComment, http.MethodDelete, stranger, owner, Deny},
		{"superuser patches any comment", KindComment, http.MethodPatch, superuser, owner, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.kind, tt.method, tt.caller, tt.owner))
		})
	}
}

func TestAuthorize_UnsupportedMethod(t *testing.T) {
	// PATCH has no entry for categories and genres; the result must be
	// MethodNotSupported for every caller, admin included.
	callers := []*models.User{nil, stranger, owner, moderator, admin, superuser}

	for _, caller := range callers {
		assert.Equal(t, MethodNotSupported, Authorize(KindCategory, http.MethodPatch, caller, nil))
		assert.Equal(t, MethodNotSupported, Authorize(KindGenre, http.MethodPatch, caller, nil))
	}

	assert.Equal(t, MethodNotSupported, Authorize(KindTitle, http.MethodPut, admin, nil))
	assert.Equal(t, MethodNotSupported, Authorize(Kind("unknown"), http.MethodGet, admin, nil))
}

func TestAuthorize_AdminPassesEveryLowerRule(t *testing.T) {
	// Wherever moderator, author or authenticated grants access, admin
	// must be granted too.
	for kind, row := range policy {
		for method := range row {
			if Authorize(kind, method, moderator, owner) == Allow {
				assert.Equal(t, Allow, Authorize(kind, method, admin, owner),
					"admin denied where moderator allowed: %s %s", kind, method)
			}
			if Authorize(kind, method, stranger, owner) == Allow {
				assert.Equal(t, Allow, Authorize(kind, method, admin, owner),
					"admin denied where plain user allowed: %s %s", kind, method)
			}
		}
	}
}

func TestAuthorize_OwnershipNeedsMatchingID(t *testing.T) {
	assert.Equal(t, Deny, Authorize(KindReview, http.MethodPatch, stranger, owner))
	assert.Equal(t, Allow, Authorize(KindReview, http.MethodPatch, owner, owner))

	// Owner unknown: plain users are denied, moderators still pass.
	assert.Equal(t, Deny, Authorize(KindReview, http.MethodPatch, owner, nil))
	assert.Equal(t, Allow, Authorize(KindReview, http.MethodPatch, moderator, nil))
}
