package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/session"
)

const accountKey = "account"

// RequireUser lets the request continue only with an authenticated
// session, otherwise redirects to the login page.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := session.Current(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(accountKey, acct)
		c.Next()
	}
}

// RequireAdmin lets the request continue only for an administrator.
// Anonymous callers go to login; signed-in non-admins get a 403 page.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, ok := session.Current(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if !acct.IsAdmin {
			c.HTML(http.StatusForbidden, "error.tmpl", gin.H{
				"Title":   "Forbidden",
				"Message": "administrator access required",
			})
			c.Abort()
			return
		}
		c.Set(accountKey, acct)
		c.Next()
	}
}

// CurrentAccount returns the snapshot stashed by the gates above.
func CurrentAccount(c *gin.Context) (session.Account, bool) {
	v, ok := c.Get(accountKey)
	if !ok {
		return session.Current(c)
	}
	acct, ok := v.(session.Account)
	return acct, ok
}
