package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/service"
)

type contextKey string

const (
	// ContextKeySessao guarda a sessão resolvida da requisição.
	ContextKeySessao contextKey = "sessao"
	// ContextKeyUsuario guarda a identidade viva, após autorização.
	ContextKeyUsuario contextKey = "usuario"
)

// SessionResolver resolve um bearer token para a sessão viva.
type SessionResolver interface {
	ResolveToken(ctx context.Context, token string) (repo.Sessao, error)
}

// Authorizer compara o papel vivo da identidade com a lista permitida.
type Authorizer interface {
	Authorize(ctx context.Context, sessao repo.Sessao, permitidas ...string) (repo.Usuario, error)
}

// BearerToken extrai o token de um header Authorization no formato exato
// "Bearer <token>". Esquema é case-sensitive: qualquer outro formato é
// erro de requisição, não de autenticação.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Auth valida o bearer token contra a coleção de sessões e injeta a sessão
// no contexto. A coleção é a autoridade: token assinado mas revogado não
// passa.
func Auth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeError(w, http.StatusBadRequest, "VALIDATION", "authorization deve ser Bearer token")
				return
			}

			sessao, err := sessions.ResolveToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrTokenInvalido) {
					writeError(w, http.StatusUnauthorized, "AUTH", "token inválido ou não encontrado")
					return
				}
				writeError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySessao, sessao)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermissao relê a identidade dona da sessão e exige que o papel vivo
// esteja na lista. A releitura é deliberada: rebaixamentos valem na hora.
func RequirePermissao(authz Authorizer, permitidas ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessao, ok := GetSessao(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "AUTH", "sessão ausente")
				return
			}

			user, err := authz.Authorize(r.Context(), sessao, permitidas...)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrPermissaoNegada):
					writeError(w, http.StatusForbidden, "FORBIDDEN", "permissão negada")
				case errors.Is(err, service.ErrTokenInvalido):
					writeError(w, http.StatusUnauthorized, "AUTH", "usuário não encontrado")
				default:
					writeError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUsuario, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessao recupera a sessão autenticada do contexto.
func GetSessao(ctx context.Context) (repo.Sessao, bool) {
	val, ok := ctx.Value(ContextKeySessao).(repo.Sessao)
	return val, ok
}

// GetUsuario recupera a identidade autorizada do contexto.
func GetUsuario(ctx context.Context) (repo.Usuario, bool) {
	val, ok := ctx.Value(ContextKeyUsuario).(repo.Usuario)
	return val, ok
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": nil,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
