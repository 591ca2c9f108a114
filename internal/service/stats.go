package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type usuarioCounter interface {
	CountByPermissao(ctx context.Context, permissao string) (int64, error)
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

const statsCacheTTL = 60 * time.Second

// StatsService agrega contagens por papel para os painéis da gestão, com
// cache curto no redis. Falha de cache nunca derruba a consulta: cai direto
// na coleção.
type StatsService struct {
	usuarios usuarioCounter
	redis    redisCommander
}

// NewStatsService cria novo serviço. redisClient nulo desabilita o cache.
func NewStatsService(usuarios usuarioCounter, redisClient *redis.Client) *StatsService {
	s := &StatsService{usuarios: usuarios}
	if redisClient != nil {
		s.redis = redisClient
	}
	return s
}

// CountByPermissao devolve a quantidade de identidades do papel informado.
func (s *StatsService) CountByPermissao(ctx context.Context, permissao string) (int64, error) {
	key := "stats:count:" + permissao

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if n, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
				return n, nil
			}
		}
	}

	n, err := s.usuarios.CountByPermissao(ctx, permissao)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, strconv.FormatInt(n, 10), statsCacheTTL).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("stats: cache indisponível")
		}
	}

	return n, nil
}
