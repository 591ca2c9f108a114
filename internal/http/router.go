package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cursinhoinsper/plataforma/internal/config"
	httpmiddleware "github.com/cursinhoinsper/plataforma/internal/http/middleware"
	"github.com/cursinhoinsper/plataforma/internal/mail"
	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/service"
)

type usuarioStore interface {
	GetByCPF(ctx context.Context, cpf string) (repo.Usuario, error)
	DeleteByCPF(ctx context.Context, cpf string) error
	ListByPermissao(ctx context.Context, permissao string) ([]repo.Usuario, error)
}

type avisoStore interface {
	Insert(ctx context.Context, a repo.Aviso) error
	List(ctx context.Context, tipo string) ([]repo.Aviso, error)
}

type gradeStore interface {
	Insert(ctx context.Context, a repo.Aula) error
	ListAll(ctx context.Context) ([]repo.Aula, error)
	ListByDataSala(ctx context.Context, data, sala string) ([]repo.Aula, error)
}

// Handler concentra as dependências dos handlers HTTP.
type Handler struct {
	auth     *service.AuthService
	stats    *service.StatsService
	usuarios usuarioStore
	avisos   avisoStore
	grade    gradeStore
	mailer   mail.Mailer
}

// NewHandler cria o conjunto de handlers. mailer pode ser nil (envio
// desabilitado).
func NewHandler(auth *service.AuthService, stats *service.StatsService, usuarios usuarioStore, avisos avisoStore, grade gradeStore, mailer mail.Mailer) *Handler {
	return &Handler{
		auth:     auth,
		stats:    stats,
		usuarios: usuarios,
		avisos:   avisos,
		grade:    grade,
		mailer:   mailer,
	}
}

// NewRouter devolve o roteador com todas as rotas e middlewares aplicados.
func NewRouter(cfg *config.Config, h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	publicLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst)
	authLimiter := httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst)

	requireAuth := httpmiddleware.Auth(h.auth)
	gestao := httpmiddleware.RequirePermissao(h.auth, repo.PermissaoGestao)
	qualquerPapel := httpmiddleware.RequirePermissao(h.auth,
		repo.PermissaoGestao, repo.PermissaoProfessor, repo.PermissaoAluno)

	r.Get("/", h.health)

	// rotas de credencial: limite mais apertado por IP
	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.IPRateLimit(authLimiter))
		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)
		r.Post("/auth/verify-token", h.verifyToken)
		r.Post("/user/permission", h.permission)
	})

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.IPRateLimit(publicLimiter))

		r.With(requireAuth, gestao).Post("/user/register", h.register)

		r.Route("/alunos", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(gestao).Post("/create", h.alunoCreate)
			r.With(gestao).Get("/get", h.alunoList)
			r.With(gestao).Get("/get/{cpf}", h.alunoGet)
			r.With(gestao).Delete("/delete/{cpf}", h.alunoDelete)
			r.With(qualquerPapel).Get("/notas", h.alunoNotas)
		})

		r.Route("/avisos", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(gestao).Post("/create", h.avisoCreate)
			r.With(qualquerPapel).Get("/get", h.avisoList)
			r.With(qualquerPapel).Get("/get/{tipo}", h.avisoList)
		})

		r.Route("/grade", func(r chi.Router) {
			r.Use(requireAuth)
			r.With(gestao).Post("/create", h.gradeCreate)
			r.With(qualquerPapel).Get("/{data}", h.gradeGet)
		})

		r.Route("/info", func(r chi.Router) {
			r.Use(requireAuth, gestao)
			r.Get("/alunos", h.infoAlunos)
			r.Get("/professores", h.infoProfessores)
			r.Get("/gestao", h.infoGestao)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "API is running!"})
}

var (
	_ usuarioStore = (*repo.Usuarios)(nil)
	_ avisoStore   = (*repo.Avisos)(nil)
	_ gradeStore   = (*repo.Grade)(nil)
)
