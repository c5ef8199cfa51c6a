package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"devmood-server/config"
	"devmood-server/database"
	"devmood-server/models"
	"devmood-server/types"
	"devmood-server/utils"
)

// Claims represents the JWT claims (using shared types)
type Claims = types.Claims

// AuthMiddleware validates identity-provider tokens and sets user context.
// Unknown subjects are provisioned on first sight; the local user row is the
// only session state this service keeps.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearerToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		user, err := provisionUser(claims)
		if err != nil {
			utils.Log.WithError(err).Error("failed to provision user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			c.Abort()
			return
		}

		c.Set("user", *user)
		c.Set("user_id", user.ID)

		c.Next()
	}
}

// OptionalAuthMiddleware is like AuthMiddleware but doesn't require
// authentication; anonymous requests pass through without user context.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		if user, err := provisionUser(claims); err == nil {
			c.Set("user", *user)
			c.Set("user_id", user.ID)
		}

		c.Next()
	}
}

func parseBearerToken(c *gin.Context) (*Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errors.New("token must be in format: Bearer <token>")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWT.Secret), nil
	})
	if err != nil {
		return nil, errors.New("token is invalid or expired")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token claims are invalid")
	}
	if claims.Subject == "" {
		return nil, errors.New("token is missing a subject")
	}
	if issuer := config.AppConfig.JWT.Issuer; issuer != "" && claims.Issuer != issuer {
		return nil, errors.New("token issuer is not trusted")
	}

	return claims, nil
}

// provisionUser resolves the external subject to a local user, creating the
// row on first authenticated interaction
func provisionUser(claims *Claims) (*models.User, error) {
	var user models.User
	err := database.DB.Where("external_id = ?", claims.Subject).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		ExternalID: claims.Subject,
		Email:      claims.Email,
		Username:   claims.Username,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
	}
	if user.Username == "" {
		user.Username = usernameFromEmail(claims.Email)
	}
	if err := database.DB.Create(&user).Error; err != nil {
		// Lost a provisioning race with a concurrent request
		if lookupErr := database.DB.Where("external_id = ?", claims.Subject).First(&user).Error; lookupErr == nil {
			return &user, nil
		}
		return nil, err
	}

	utils.Log.WithField("user_id", user.ID).Info("provisioned new user")
	return &user, nil
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
