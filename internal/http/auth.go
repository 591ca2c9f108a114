package http

import (
	"encoding/json"
	"errors"
	"net/http"

	httpmiddleware "github.com/cursinhoinsper/plataforma/internal/http/middleware"
	"github.com/cursinhoinsper/plataforma/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login autentica por email/senha e devolve o token da sessão recém-criada.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrCredenciaisInvalidas) {
			WriteError(w, http.StatusUnauthorized, "AUTH", "email ou senha inválidos")
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// logout revoga a sessão do bearer token apresentado.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := httpmiddleware.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "authorization deve ser Bearer token")
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrTokenInvalido) {
			WriteError(w, http.StatusUnauthorized, "AUTH", "token inválido")
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "logout realizado"})
}

// verifyToken informa se o bearer token corresponde a uma sessão viva.
func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	token, ok := httpmiddleware.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "authorization deve ser Bearer token")
		return
	}

	if _, err := h.auth.ResolveToken(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrTokenInvalido) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "usuário não encontrado")
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "usuário encontrado"})
}
