// Package session wraps the cookie session behind an immutable
// per-request Account snapshot. Handlers never touch raw session
// values; the snapshot is issued on login and cleared on logout.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

const (
	keyUserID   = "user_id"
	keyUsername = "user_username"
	keyIsAdmin  = "user_is_admin"
)

// Account is what a request knows about its caller.
type Account struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// Issue replaces the session's identity with u.
func Issue(c *gin.Context, u *models.User) error {
	sess := sessions.Default(c)
	sess.Set(keyUserID, u.ID)
	sess.Set(keyUsername, u.Username)
	sess.Set(keyIsAdmin, u.IsAdmin)
	return sess.Save()
}

// Clear destroys the session's identity unconditionally.
func Clear(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// Current returns the authenticated account for this request, if any.
func Current(c *gin.Context) (Account, bool) {
	sess := sessions.Default(c)
	id, ok := sess.Get(keyUserID).(uint)
	if !ok || id == 0 {
		return Account{}, false
	}
	name, _ := sess.Get(keyUsername).(string)
	admin, _ := sess.Get(keyIsAdmin).(bool)
	return Account{UserID: id, Username: name, IsAdmin: admin}, true
}
