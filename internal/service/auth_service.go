package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cursinhoinsper/plataforma/internal/auth"
	"github.com/cursinhoinsper/plataforma/internal/repo"
	"github.com/cursinhoinsper/plataforma/internal/util"
)

var (
	// ErrCredenciaisInvalidas indica falha na autenticação por email/senha.
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	// ErrTokenInvalido indica token ausente da coleção de sessões: nunca
	// emitido, já revogado ou varrido por expiração.
	ErrTokenInvalido = errors.New("token inválido ou não encontrado")
	// ErrPermissaoNegada indica papel fora da lista permitida do endpoint.
	ErrPermissaoNegada = errors.New("permissão negada")
	// ErrUsuarioDuplicado indica email ou CPF já cadastrado.
	ErrUsuarioDuplicado = errors.New("email ou cpf já registrado")
	// ErrValidacao agrupa falhas de validação de entrada no cadastro.
	ErrValidacao = errors.New("dados inválidos")
)

type usuarioRepository interface {
	GetByEmail(ctx context.Context, email string) (repo.Usuario, error)
	GetByCPF(ctx context.Context, cpf string) (repo.Usuario, error)
	Insert(ctx context.Context, u repo.Usuario) (repo.Usuario, error)
	DeleteByCPF(ctx context.Context, cpf string) error
	ListByPermissao(ctx context.Context, permissao string) ([]repo.Usuario, error)
}

type sessaoRepository interface {
	Insert(ctx context.Context, s repo.Sessao) error
	GetByToken(ctx context.Context, token string) (repo.Sessao, error)
	DeleteByToken(ctx context.Context, token string) error
}

// AuthService concentra emissão, resolução e revogação de sessões, além da
// autorização por papel. O token é assinado (HS256) mas, uma vez emitido, é
// tratado como capability opaca: a coleção de sessões é a autoridade sobre
// estar vivo — logout precisa revogar antes da expiração assinada.
type AuthService struct {
	usuarios usuarioRepository
	sessoes  sessaoRepository
	jwt      *auth.JWTManager
}

// NewAuthService cria novo serviço.
func NewAuthService(usuarios usuarioRepository, sessoes sessaoRepository, jwtMgr *auth.JWTManager) *AuthService {
	return &AuthService{usuarios: usuarios, sessoes: sessoes, jwt: jwtMgr}
}

// Login verifica credenciais, emite o token e persiste a sessão. Logins são
// aditivos: sessões anteriores do mesmo usuário continuam válidas.
func (s *AuthService) Login(ctx context.Context, email, senha string) (string, error) {
	user, err := s.usuarios.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("login: usuário não encontrado")
			return "", ErrCredenciaisInvalidas
		}
		return "", err
	}

	if !auth.Verify(senha, user.SenhaHash) {
		log.Warn().Msg("login: senha inválida")
		return "", ErrCredenciaisInvalidas
	}

	token, expiraEm, err := s.jwt.GenerateAccessToken(user.ID.Hex(), user.Permissao)
	if err != nil {
		return "", fmt.Errorf("emitir token: %w", err)
	}

	sessao := repo.Sessao{
		Token:     token,
		Email:     user.Email,
		Permissao: user.Permissao,
		ExpiraEm:  expiraEm,
	}
	if err := s.sessoes.Insert(ctx, sessao); err != nil {
		return "", err
	}

	return token, nil
}

// Logout revoga a sessão do token. Token desconhecido vira ErrTokenInvalido.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessoes.DeleteByToken(ctx, token); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTokenInvalido
		}
		return err
	}
	return nil
}

// ResolveToken busca a sessão viva do token. A validade é decidida aqui, na
// coleção, e não decodificando o JWT — revogação explícita tem que valer.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (repo.Sessao, error) {
	sessao, err := s.sessoes.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.Sessao{}, ErrTokenInvalido
		}
		return repo.Sessao{}, err
	}
	return sessao, nil
}

// Authorize relê a identidade atual pelo email da sessão e compara o papel
// vivo com a lista permitida. O snapshot da sessão nunca é confiado:
// rebaixamentos valem imediatamente, sem esperar a sessão expirar.
func (s *AuthService) Authorize(ctx context.Context, sessao repo.Sessao, permitidas ...string) (repo.Usuario, error) {
	user, err := s.usuarios.GetByEmail(ctx, sessao.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return repo.Usuario{}, ErrTokenInvalido
		}
		return repo.Usuario{}, err
	}

	for _, p := range permitidas {
		if user.Permissao == p {
			return user, nil
		}
	}

	return repo.Usuario{}, ErrPermissaoNegada
}

// PermissaoAtual resolve o token e devolve o papel vivo da identidade dona.
func (s *AuthService) PermissaoAtual(ctx context.Context, token string) (string, error) {
	sessao, err := s.ResolveToken(ctx, token)
	if err != nil {
		return "", err
	}

	user, err := s.usuarios.GetByEmail(ctx, sessao.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrTokenInvalido
		}
		return "", err
	}

	return user.Permissao, nil
}

// RegisterInput agrupa os campos de cadastro de uma identidade.
type RegisterInput struct {
	Nome      string
	Email     string
	CPF       string
	Senha     string
	Permissao string
	Sala      string
}

// Register cadastra uma identidade. A checagem prévia de duplicidade é só
// atalho para erro amigável; a corrida entre cadastros concorrentes é
// decidida pelos índices únicos da coleção, e a violação também vira
// ErrUsuarioDuplicado.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (repo.Usuario, error) {
	if err := util.ValidateEmail(in.Email); err != nil {
		return repo.Usuario{}, fmt.Errorf("%w: %s", ErrValidacao, err)
	}
	if err := util.ValidatePassword(in.Senha); err != nil {
		return repo.Usuario{}, fmt.Errorf("%w: %s", ErrValidacao, err)
	}
	if err := util.ValidateCPF(in.CPF); err != nil {
		return repo.Usuario{}, fmt.Errorf("%w: %s", ErrValidacao, err)
	}
	if err := util.RequireString(in.Nome, "nome"); err != nil {
		return repo.Usuario{}, fmt.Errorf("%w: %s", ErrValidacao, err)
	}

	permissao := strings.ToUpper(strings.TrimSpace(in.Permissao))
	if !repo.PermissaoValida(permissao) {
		return repo.Usuario{}, fmt.Errorf("%w: permissão desconhecida", ErrValidacao)
	}

	if _, err := s.usuarios.GetByEmail(ctx, in.Email); err == nil {
		return repo.Usuario{}, ErrUsuarioDuplicado
	} else if !errors.Is(err, repo.ErrNotFound) {
		return repo.Usuario{}, err
	}
	if _, err := s.usuarios.GetByCPF(ctx, in.CPF); err == nil {
		return repo.Usuario{}, ErrUsuarioDuplicado
	} else if !errors.Is(err, repo.ErrNotFound) {
		return repo.Usuario{}, err
	}

	hash, err := auth.Hash(in.Senha)
	if err != nil {
		return repo.Usuario{}, fmt.Errorf("hash de senha: %w", err)
	}

	user := repo.Usuario{
		Nome:      util.Capitalize(in.Nome),
		Email:     in.Email,
		CPF:       in.CPF,
		SenhaHash: hash,
		Permissao: permissao,
		Sala:      in.Sala,
	}
	if permissao == repo.PermissaoAluno {
		user.Notas = map[string]float64{}
	}

	created, err := s.usuarios.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicado) {
			return repo.Usuario{}, ErrUsuarioDuplicado
		}
		return repo.Usuario{}, err
	}

	return created, nil
}

var (
	_ usuarioRepository = (*repo.Usuarios)(nil)
	_ sessaoRepository  = (*repo.Sessoes)(nil)
)
