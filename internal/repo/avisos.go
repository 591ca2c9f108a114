package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Avisos dá acesso à coleção de comunicados.
type Avisos struct {
	col *mongo.Collection
}

func NewAvisos(db *mongo.Database) *Avisos {
	return &Avisos{col: db.Collection("avisos")}
}

func (r *Avisos) Insert(ctx context.Context, a Aviso) error {
	a.CriadoEm = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("inserir aviso: %w", err)
	}
	return nil
}

// List devolve todos os avisos; tipo vazio não filtra.
func (r *Avisos) List(ctx context.Context, tipo string) ([]Aviso, error) {
	filter := bson.M{}
	if tipo != "" {
		filter["tipo"] = tipo
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar avisos: %w", err)
	}
	defer cur.Close(ctx)

	var avisos []Aviso
	if err := cur.All(ctx, &avisos); err != nil {
		return nil, fmt.Errorf("decodificar avisos: %w", err)
	}
	return avisos, nil
}
