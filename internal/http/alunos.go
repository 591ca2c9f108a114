package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	httpmiddleware "github.com/cursinhoinsper/plataforma/internal/http/middleware"
	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/service"
)

type alunoCreateRequest struct {
	Nome     string `json:"nome"`
	CPF      string `json:"cpf"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Sala     string `json:"sala"`
}

// alunoCreate cadastra um aluno (papel fixo ALUNO) e dispara o e-mail de
// confirmação com a senha inicial, quando o envio estiver configurado.
func (h *Handler) alunoCreate(w http.ResponseWriter, r *http.Request) {
	var req alunoCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido")
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Nome:      req.Nome,
		Email:     req.Email,
		CPF:       req.CPF,
		Senha:     req.Password,
		Permissao: repo.PermissaoAluno,
		Sala:      req.Sala,
	})
	if err != nil {
		writeRegisterError(w, err)
		return
	}

	if h.mailer != nil {
		// fire-and-forget: falha de e-mail não desfaz o cadastro
		go func(email, senha string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.mailer.SendSenhaInicial(ctx, email, senha); err != nil {
				log.Warn().Err(err).Msg("alunos: envio de e-mail de inscrição falhou")
			}
		}(user.Email, req.Password)
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "aluno criado com sucesso",
		"id":      user.ID.Hex(),
	})
}

// alunoList devolve todos os alunos cadastrados. Restrito à gestão.
func (h *Handler) alunoList(w http.ResponseWriter, r *http.Request) {
	alunos, err := h.usuarios.ListByPermissao(r.Context(), repo.PermissaoAluno)
	if err != nil {
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"alunos": alunos})
}

// alunoGet devolve um aluno pelo CPF. Restrito à gestão.
func (h *Handler) alunoGet(w http.ResponseWriter, r *http.Request) {
	cpf := chi.URLParam(r, "cpf")

	aluno, err := h.usuarios.GetByCPF(r.Context(), cpf)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "aluno não encontrado")
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, aluno)
}

// alunoDelete remove um aluno pelo CPF. Restrito à gestão.
func (h *Handler) alunoDelete(w http.ResponseWriter, r *http.Request) {
	cpf := chi.URLParam(r, "cpf")

	if err := h.usuarios.DeleteByCPF(r.Context(), cpf); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "NOT_FOUND", "aluno não encontrado")
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "INDISPONIVEL", "armazenamento indisponível")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "aluno deletado com sucesso"})
}

// alunoNotas devolve as notas da própria identidade autenticada.
func (h *Handler) alunoNotas(w http.ResponseWriter, r *http.Request) {
	user, ok := httpmiddleware.GetUsuario(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "AUTH", "sessão ausente")
		return
	}

	notas := user.Notas
	if notas == nil {
		notas = map[string]float64{}
	}
	WriteJSON(w, http.StatusOK, notas)
}
