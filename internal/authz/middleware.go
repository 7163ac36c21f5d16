package authz

import (
	"go-daycare/internal/shared/apperror"
	"go-daycare/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const filterContextKey = "scope_filter"

func PrincipalFromContext(c *gin.Context) Principal {
	id := c.GetString("user_id_validated")
	if id == "" {
		id = c.GetString("user_id")
	}
	return Principal{
		ID:   id,
		Role: c.GetString("role"),
	}
}

// Authorize gates a route against the grant matrix. Ownership of the
// individual resource is checked again inside the service with a full
// ResourceRef; this middleware only rejects what no ref could ever allow.
func Authorize(ev *Evaluator, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)

		if _, err := ev.Evaluate(c.Request.Context(), p, resource, action, nil); err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthorizeList resolves the principal's scope filter and stashes it in the
// gin context for the handler to pass down to the repository.
func AuthorizeList(ev *Evaluator, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)

		decision, err := ev.EvaluateList(c.Request.Context(), p, resource)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		if decision.Filter != nil {
			c.Set(filterContextKey, decision.Filter)
		}
		c.Next()
	}
}

// AuthorizeChild gates routes addressing a single child by the childId path
// parameter, resolving ownership through the child directory.
func AuthorizeChild(ev *Evaluator, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFromContext(c)
		ref := &ResourceRef{ChildID: c.Param("childId")}

		if _, err := ev.Evaluate(c.Request.Context(), p, resource, action, ref); err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}
		c.Next()
	}
}

func FilterFromContext(c *gin.Context) *ScopeFilter {
	v, ok := c.Get(filterContextKey)
	if !ok {
		return nil
	}
	f, _ := v.(*ScopeFilter)
	return f
}
