package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type ctxKey string

const ctxUsuario ctxKey = "usuario"

// Claims son los datos esperados en el token emitido por el back-office.
type Claims struct {
	Usuario string `json:"usuario"`
	jwt.RegisteredClaims
}

// AuthMiddleware exige un bearer token HS256 firmado con secret. Las solicitudes
// OPTIONS pasan sin token para no romper el preflight de CORS.
func AuthMiddleware(secret []byte, logger *zap.Logger) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				writeError(w, logger, http.StatusUnauthorized, "token ausente")
				return
			}
			raw := strings.TrimPrefix(h, "Bearer ")

			claims := &Claims{}
			_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil {
				logger.Debug("rejected token", zap.Error(err))
				writeError(w, logger, http.StatusUnauthorized, "token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), ctxUsuario, claims.Usuario)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsuarioFromContext devuelve el usuario autenticado, o "" si la ruta no exige token.
func UsuarioFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxUsuario).(string)
	return v
}
