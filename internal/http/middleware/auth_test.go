package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/service"
)

type stubResolver struct {
	sessoes map[string]repo.Sessao
	err     error
}

func (s *stubResolver) ResolveToken(ctx context.Context, token string) (repo.Sessao, error) {
	if s.err != nil {
		return repo.Sessao{}, s.err
	}
	if sessao, ok := s.sessoes[token]; ok {
		return sessao, nil
	}
	return repo.Sessao{}, service.ErrTokenInvalido
}

type stubAuthorizer struct {
	user repo.Usuario
	err  error
}

func (s *stubAuthorizer) Authorize(ctx context.Context, sessao repo.Sessao, permitidas ...string) (repo.Usuario, error) {
	if s.err != nil {
		return repo.Usuario{}, s.err
	}
	return s.user, nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer abc def", "abc def", true},
		{"Token abc", "", false},
		{"bearer abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tc := range tests {
		token, ok := BearerToken(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Errorf("BearerToken(%q) = (%q, %v), esperado (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	resolver := &stubResolver{sessoes: map[string]repo.Sessao{
		"tok-vivo": {Token: "tok-vivo", Email: "a@b.com", Permissao: repo.PermissaoAluno},
	}}

	var captured repo.Sessao
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = GetSessao(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"sem header", "", http.StatusBadRequest},
		{"esquema errado", "Token tok-vivo", http.StatusBadRequest},
		{"uma parte só", "Bearer", http.StatusBadRequest},
		{"token desconhecido", "Bearer tok-morto", http.StatusUnauthorized},
		{"token vivo", "Bearer tok-vivo", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			Auth(resolver)(next).ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, esperado %d", rec.Code, tc.status)
			}
		})
	}

	if captured.Email != "a@b.com" {
		t.Fatalf("sessão não chegou ao handler: %+v", captured)
	}
}

func TestAuthMiddlewareStorageUnavailable(t *testing.T) {
	resolver := &stubResolver{err: errors.New("sem conexão")}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler não deveria rodar")
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer qualquer")
	rec := httptest.NewRecorder()

	Auth(resolver)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, esperado 503", rec.Code)
	}
}

func TestRequirePermissao(t *testing.T) {
	sessao := repo.Sessao{Token: "t", Email: "a@b.com", Permissao: repo.PermissaoGestao}

	tests := []struct {
		name   string
		authz  *stubAuthorizer
		status int
	}{
		{"autorizado", &stubAuthorizer{user: repo.Usuario{Email: "a@b.com", Permissao: repo.PermissaoGestao}}, http.StatusOK},
		{"negado", &stubAuthorizer{err: service.ErrPermissaoNegada}, http.StatusForbidden},
		{"identidade sumiu", &stubAuthorizer{err: service.ErrTokenInvalido}, http.StatusUnauthorized},
		{"armazenamento fora", &stubAuthorizer{err: errors.New("sem conexão")}, http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, ok := GetUsuario(r.Context()); !ok {
					t.Fatal("usuário ausente do contexto")
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req = req.WithContext(context.WithValue(req.Context(), ContextKeySessao, sessao))
			rec := httptest.NewRecorder()

			RequirePermissao(tc.authz, repo.PermissaoGestao)(next).ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, esperado %d", rec.Code, tc.status)
			}
		})
	}
}

func TestRequirePermissaoSemSessao(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler não deveria rodar")
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()

	RequirePermissao(&stubAuthorizer{}, repo.PermissaoGestao)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, esperado 401", rec.Code)
	}
}
