package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Grade dá acesso à coleção da grade horária.
type Grade struct {
	col *mongo.Collection
}

func NewGrade(db *mongo.Database) *Grade {
	return &Grade{col: db.Collection("grade")}
}

func (r *Grade) Insert(ctx context.Context, a Aula) error {
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("inserir aula: %w", err)
	}
	return nil
}

// ListAll devolve a grade inteira (visão da gestão).
func (r *Grade) ListAll(ctx context.Context) ([]Aula, error) {
	return r.list(ctx, bson.M{})
}

// ListByDataSala devolve as aulas de um dia restritas à sala do aluno.
func (r *Grade) ListByDataSala(ctx context.Context, data, sala string) ([]Aula, error) {
	return r.list(ctx, bson.M{"data": data, "sala": sala})
}

func (r *Grade) list(ctx context.Context, filter bson.M) ([]Aula, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar grade: %w", err)
	}
	defer cur.Close(ctx)

	var aulas []Aula
	if err := cur.All(ctx, &aulas); err != nil {
		return nil, fmt.Errorf("decodificar grade: %w", err)
	}
	return aulas, nil
}
