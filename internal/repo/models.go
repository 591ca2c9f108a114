package repo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permissões reconhecidas pela plataforma. GESTAO engloba as operações de
// escrita; PROFESSOR e ALUNO têm acesso de leitura progressivamente menor.
const (
	PermissaoGestao    = "GESTAO"
	PermissaoProfessor = "PROFESSOR"
	PermissaoAluno     = "ALUNO"
)

// PermissaoValida informa se o valor pertence ao conjunto fechado de papéis.
func PermissaoValida(p string) bool {
	switch p {
	case PermissaoGestao, PermissaoProfessor, PermissaoAluno:
		return true
	}
	return false
}

// Usuario representa qualquer identidade cadastrada (gestão, professor ou
// aluno). Email e CPF são únicos na coleção.
type Usuario struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nome      string             `bson:"nome" json:"nome"`
	Email     string             `bson:"email" json:"email"`
	CPF       string             `bson:"cpf" json:"cpf"`
	SenhaHash string             `bson:"senha_hash" json:"-"`
	Permissao string             `bson:"permissao" json:"permissao"`
	Sala      string             `bson:"sala,omitempty" json:"sala,omitempty"`
	Notas     map[string]float64 `bson:"notas,omitempty" json:"notas,omitempty"`
	CriadoEm  time.Time          `bson:"criado_em" json:"criado_em"`
}

// Sessao vincula um token emitido à identidade dona e à expiração. A
// permissão é um snapshot do momento do login; autorização sempre relê o
// usuário atual.
type Sessao struct {
	Token     string    `bson:"token" json:"token"`
	Email     string    `bson:"email" json:"email"`
	Permissao string    `bson:"permissao" json:"permissao"`
	ExpiraEm  time.Time `bson:"expira_em" json:"expira_em"`
}

// Aviso é um comunicado publicado pela gestão.
type Aviso struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Titulo   string             `bson:"titulo" json:"titulo"`
	Mensagem string             `bson:"mensagem" json:"mensagem"`
	Tipo     string             `bson:"tipo" json:"tipo"`
	Autor    string             `bson:"autor" json:"autor"`
	CriadoEm time.Time          `bson:"criado_em" json:"criado_em"`
}

// Aula é uma entrada da grade horária.
type Aula struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Data      string             `bson:"data" json:"data"`
	Horario   string             `bson:"horario" json:"horario"`
	Materia   string             `bson:"materia" json:"materia"`
	Local     string             `bson:"local" json:"local"`
	Topico    string             `bson:"topico" json:"topico"`
	Professor string             `bson:"professor" json:"professor"`
	Sala      string             `bson:"sala" json:"sala"`
}
