package utils

import (
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// ExtractTokenUser pulls the acting user out of a token already validated by
// the JWT middleware. Returns zero values when no valid token is attached.
func ExtractTokenUser(c echo.Context) (uint64, string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return 0, ""
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ""
	}

	userID, _ := claims["userID"].(float64)
	externalID, _ := claims["externalID"].(string)
	return uint64(userID), externalID
}
