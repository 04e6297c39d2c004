package middleware

import (
	"net/http"
	"strings"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/apierror"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const ClaimsKey = "claims"

// JWTClaims son los claims propios de cada access token. Los permisos viajan
// dentro del token: un cambio de rol aplica en el próximo login o refresh.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Rol      string   `json:"rol"`
	Permisos []string `json:"permisos"`
	jwt.RegisteredClaims
}

// JWTAuth valida el Bearer token en toda ruta protegida y deja el actor en el
// contexto de la petición para auditoría.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)

		actor := service.Actor{Username: claims.Username}
		if uid, err := uuid.Parse(claims.UserID); err == nil {
			actor.ID = &uid
		}
		c.Request = c.Request.WithContext(service.ConActor(c.Request.Context(), actor))

		c.Next()
	}
}

// RequirePermiso rechaza peticiones cuyo token no trae la clave de permiso
// "modulo.accion" exigida por la ruta.
func RequirePermiso(clave string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		for _, p := range claims.Permisos {
			if p == clave {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
	}
}

// GetClaims recupera los claims tipados del contexto Gin.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}
