package http

import (
	"net/http"

	"github.com/cursinhoinsper/plataforma/internal/repo"
)

// infoAlunos devolve a quantidade de alunos cadastrados.
func (h *Handler) infoAlunos(w http.ResponseWriter, r *http.Request) {
	h.writeCount(w, r, repo.PermissaoAluno)
}

// infoProfessores devolve a quantidade de professores cadastrados.
func (h *Handler) infoProfessores(w http.ResponseWriter, r *http.Request) {
	h.writeCount(w, r, repo.PermissaoProfessor)
}

// infoGestao devolve a quantidade de identidades de gestão.
func (h *Handler) infoGestao(w http.ResponseWriter, r *http.Request) {
	h.writeCount(w, r, repo.PermissaoGestao)
}

func (h *Handler) writeCount(w http.ResponseWriter, r *http.Request, permissao string) {
	n, err := h.stats.CountByPermissao(r.Context(), permissao)
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]int64{"total": n})
}
