package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// bindErrorMessage turns a gin binding error into something the client can
// act on; validator errors name the offending field.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("invalid value for field %q (%s)", fe.Field(), fe.Tag())
	}
	return "invalid request body"
}

// userID pulls the authenticated user out of the gin context. The auth
// middleware guarantees it is set on protected routes.
func userID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
