package http

import (
	"encoding/json"
	"errors"
	"net/http"

	httpmiddleware "github.com/cursinhoinsper/plataforma/internal/http/middleware"
	"github.com/cursinhoinsper/plataforma/internal/service"
)

type registerRequest struct {
	Nome      string `json:"nome"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	Permissao string `json:"permissao"`
	Password  string `json:"password"`
	Sala      string `json:"sala,omitempty"`
}

// register cadastra uma identidade com o papel informado. Restrito à gestão.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Nome:      req.Nome,
		Email:     req.Email,
		CPF:       req.CPF,
		Senha:     req.Password,
		Permissao: req.Permissao,
		Sala:      req.Sala,
	})
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// permission devolve o papel vivo da identidade dona do token, ou null
// quando o token não corresponde a sessão nenhuma.
func (h *Handler) permission(w http.ResponseWriter, r *http.Request) {
	token, ok := httpmiddleware.BearerToken(r.Header.Get("Authorization"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "authorization deve ser Bearer token")
		return
	}

	permissao, err := h.auth.PermissaoAtual(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalido) {
			WriteJSON(w, http.StatusOK, map[string]any{"permissao": nil})
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"permissao": permissao})
}

func writeRegisterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUsuarioDuplicado):
		WriteError(w, http.StatusConflict, "CONFLICT", "email ou cpf já registrado")
	case errors.Is(err, service.ErrValidacao):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
	default:
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
	}
}
