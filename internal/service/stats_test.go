package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cursinhoinsper/plataforma/internal/repo"
)

type stubCounter struct {
	total int64
	calls int
}

func (s *stubCounter) CountByPermissao(ctx context.Context, permissao string) (int64, error) {
	s.calls++
	return s.total, nil
}

type fakeRedis struct {
	store map[string]string
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.store[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.store[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func TestCountByPermissaoUsesCache(t *testing.T) {
	counter := &stubCounter{total: 42}
	svc := &StatsService{usuarios: counter, redis: &fakeRedis{store: map[string]string{}}}

	n, err := svc.CountByPermissao(context.Background(), repo.PermissaoAluno)
	if err != nil {
		t.Fatalf("primeira contagem: %v", err)
	}
	if n != 42 {
		t.Fatalf("total = %d, esperado 42", n)
	}

	// segunda leitura vem do cache, sem tocar a coleção
	if _, err := svc.CountByPermissao(context.Background(), repo.PermissaoAluno); err != nil {
		t.Fatalf("segunda contagem: %v", err)
	}
	if counter.calls != 1 {
		t.Fatalf("coleção consultada %d vezes, esperado 1", counter.calls)
	}
}

func TestCountByPermissaoSemCache(t *testing.T) {
	counter := &stubCounter{total: 7}
	svc := NewStatsService(counter, nil)

	for i := 0; i < 2; i++ {
		n, err := svc.CountByPermissao(context.Background(), repo.PermissaoGestao)
		if err != nil {
			t.Fatalf("contagem: %v", err)
		}
		if n != 7 {
			t.Fatalf("total = %d, esperado 7", n)
		}
	}
	if counter.calls != 2 {
		t.Fatalf("sem cache, coleção deveria ser consultada 2 vezes; foi %d", counter.calls)
	}
}
