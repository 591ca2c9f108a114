package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Usuarios dá acesso tipado à coleção de identidades.
type Usuarios struct {
	col *mongo.Collection
}

// NewUsuarios cria o repositório e garante os índices únicos de email e CPF.
// O índice é o ponto real de aplicação da unicidade; as checagens prévias da
// camada de serviço são só atalho para mensagem amigável.
func NewUsuarios(db *mongo.Database) *Usuarios {
	col := db.Collection("usuarios")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cpf", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Warn().Err(err).Msg("usuarios: criação de índices falhou")
	}

	return &Usuarios{col: col}
}

// GetByEmail busca a identidade pelo email (match exato, case-sensitive).
func (r *Usuarios) GetByEmail(ctx context.Context, email string) (Usuario, error) {
	var u Usuario
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, fmt.Errorf("buscar usuário por email: %w", err)
	}
	return u, nil
}

// GetByCPF busca a identidade pelo CPF.
func (r *Usuarios) GetByCPF(ctx context.Context, cpf string) (Usuario, error) {
	var u Usuario
	err := r.col.FindOne(ctx, bson.M{"cpf": cpf}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Usuario{}, ErrNotFound
		}
		return Usuario{}, fmt.Errorf("buscar usuário por cpf: %w", err)
	}
	return u, nil
}

// Insert grava uma nova identidade. Violação dos índices únicos vira
// ErrDuplicado para o chamador mapear como conflito.
func (r *Usuarios) Insert(ctx context.Context, u Usuario) (Usuario, error) {
	u.CriadoEm = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Usuario{}, ErrDuplicado
		}
		return Usuario{}, fmt.Errorf("inserir usuário: %w", err)
	}

	if err := r.col.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&u); err != nil {
		return Usuario{}, fmt.Errorf("reler usuário inserido: %w", err)
	}
	return u, nil
}

// DeleteByCPF remove a identidade. Ausência vira ErrNotFound.
func (r *Usuarios) DeleteByCPF(ctx context.Context, cpf string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"cpf": cpf})
	if err != nil {
		return fmt.Errorf("remover usuário: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByPermissao lista identidades de um papel.
func (r *Usuarios) ListByPermissao(ctx context.Context, permissao string) ([]Usuario, error) {
	cur, err := r.col.Find(ctx, bson.M{"permissao": permissao})
	if err != nil {
		return nil, fmt.Errorf("listar usuários: %w", err)
	}
	defer cur.Close(ctx)

	var usuarios []Usuario
	if err := cur.All(ctx, &usuarios); err != nil {
		return nil, fmt.Errorf("decodificar usuários: %w", err)
	}
	return usuarios, nil
}

// CountByPermissao conta identidades de um papel.
func (r *Usuarios) CountByPermissao(ctx context.Context, permissao string) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"permissao": permissao})
	if err != nil {
		return 0, fmt.Errorf("contar usuários: %w", err)
	}
	return n, nil
}
