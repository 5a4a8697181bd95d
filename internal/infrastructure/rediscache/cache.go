// Package rediscache implementa el caché de lecturas sobre Redis.
// Todas las operaciones son best-effort: el riesgo de lectura obsoleta se
// acepta antes que hacer fallar una escritura de negocio por el caché.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tu-usuario/warehouse-sync/internal/application/cache"
	"github.com/tu-usuario/warehouse-sync/pkg/config"
	"github.com/tu-usuario/warehouse-sync/pkg/logger"
)

var _ cache.Store = (*Cache)(nil)

// NewClient crea y verifica el cliente Redis. El caller es dueño del ciclo de
// vida: se crea al arrancar el proceso y se cierra en el shutdown, no hay
// estado global perezoso.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Cache adaptador del puerto cache.Store sobre un cliente Redis inyectado.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// New construye el adaptador.
func New(client *redis.Client, log *logger.Logger) *Cache {
	return &Cache{client: client, log: log}
}

// Get devuelve el valor cacheado y si hubo hit. Los fallos cuentan como miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("fallo al leer caché")
		}
		return "", false
	}
	return value, true
}

// Set guarda el valor con TTL. Los fallos se registran y se descartan.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("fallo al escribir caché")
	}
}

// Invalidate elimina las claves indicadas. Nunca propaga el error: la
// invalidación corre después del commit y no debe deshacer la escritura.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("fallo al invalidar caché")
		return
	}
	c.log.Debug().Strs("keys", keys).Msg("caché invalidado")
}
