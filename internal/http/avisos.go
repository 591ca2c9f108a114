package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/cursinhoinsper/plataforma/internal/http/middleware"
	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/util"
)

type avisoCreateRequest struct {
	Titulo   string `json:"titulo"`
	Mensagem string `json:"mensagem"`
	Tipo     string `json:"tipo"`
}

// avisoCreate publica um comunicado assinado pela identidade autenticada.
func (h *Handler) avisoCreate(w http.ResponseWriter, r *http.Request) {
	var req avisoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}
	if err := util.RequireString(req.Titulo, "titulo"); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := util.RequireString(req.Mensagem, "mensagem"); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	user, _ := httpmiddleware.GetUsuario(r.Context())
	aviso := repo.Aviso{
		Titulo:   req.Titulo,
		Mensagem: req.Mensagem,
		Tipo:     req.Tipo,
		Autor:    user.Email,
	}

	if err := h.avisos.Insert(r.Context(), aviso); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "aviso criado com sucesso"})
}

// avisoList devolve os comunicados, opcionalmente filtrados por tipo.
func (h *Handler) avisoList(w http.ResponseWriter, r *http.Request) {
	tipo := chi.URLParam(r, "tipo")

	avisos, err := h.avisos.List(r.Context(), tipo)
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"avisos": avisos})
}
