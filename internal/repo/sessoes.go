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

// Sessoes dá acesso tipado à coleção de sessões emitidas. O token é a chave
// de lookup; não há restrição de sessão única por usuário — logins são
// aditivos (multi-dispositivo).
type Sessoes struct {
	col *mongo.Collection
}

// NewSessoes cria o repositório e garante o índice único por token.
func NewSessoes(db *mongo.Database) *Sessoes {
	col := db.Collection("sessoes")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Warn().Err(err).Msg("sessoes: criação de índice falhou")
	}

	return &Sessoes{col: col}
}

// Insert persiste uma sessão recém-emitida.
func (r *Sessoes) Insert(ctx context.Context, s Sessao) error {
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("inserir sessão: %w", err)
	}
	return nil
}

// GetByToken resolve o token para a sessão dona. Ausência (nunca emitido,
// revogado ou já varrido) vira ErrNotFound.
func (r *Sessoes) GetByToken(ctx context.Context, token string) (Sessao, error) {
	var s Sessao
	err := r.col.FindOne(ctx, bson.M{"token": token}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Sessao{}, ErrNotFound
		}
		return Sessao{}, fmt.Errorf("buscar sessão: %w", err)
	}
	return s, nil
}

// DeleteByToken revoga explicitamente uma sessão (logout).
func (r *Sessoes) DeleteByToken(ctx context.Context, token string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return fmt.Errorf("remover sessão: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpiradas remove em lote as sessões com expiração anterior a now e
// devolve quantas foram removidas.
func (r *Sessoes) DeleteExpiradas(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"expira_em": bson.M{"$lt": now}})
	if err != nil {
		return 0, fmt.Errorf("remover sessões expiradas: %w", err)
	}
	return res.DeletedCount, nil
}
