package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpmiddleware "github.com/cursinhoinsper/plataforma/internal/http/middleware"
	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/util"
)

type gradeCreateRequest struct {
	Data      string `json:"data"`
	Horario   string `json:"horario"`
	Materia   string `json:"materia"`
	Local     string `json:"local"`
	Topico    string `json:"topico"`
	Professor string `json:"professor"`
	Sala      string `json:"sala"`
}

// gradeCreate insere uma aula na grade horária. Restrito à gestão.
func (h *Handler) gradeCreate(w http.ResponseWriter, r *http.Request) {
	var req gradeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}
	if err := util.RequireString(req.Data, "data"); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	if err := util.RequireString(req.Sala, "sala"); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	aula := repo.Aula{
		Data:      req.Data,
		Horario:   req.Horario,
		Materia:   req.Materia,
		Local:     req.Local,
		Topico:    req.Topico,
		Professor: req.Professor,
		Sala:      req.Sala,
	}

	if err := h.grade.Insert(r.Context(), aula); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "grade criada com sucesso"})
}

// gradeGet devolve as aulas de um dia. A gestão enxerga a grade inteira; os
// demais papéis só enxergam a própria sala.
func (h *Handler) gradeGet(w http.ResponseWriter, r *http.Request) {
	user, ok := httpmiddleware.GetUsuario(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "AUTH", "sessão ausente")
		return
	}

	data := chi.URLParam(r, "data")

	var (
		aulas []repo.Aula
		err   error
	)
	if user.Permissao == repo.PermissaoGestao {
		aulas, err = h.grade.ListAll(r.Context())
	} else {
		aulas, err = h.grade.ListByDataSala(r.Context(), data, user.Sala)
	}
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	if len(aulas) == 0 {
		WriteJSON(w, http.StatusOK, map[string]string{"message": "grade não encontrada"})
		return
	}

	WriteJSON(w, http.StatusOK, aulas)
}
