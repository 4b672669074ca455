package main

import (
	"context"
	"fmt"
	"time"

	"github.com/soulforge/cultivation-api/internal/engine"
	charorch "github.com/soulforge/cultivation-api/internal/orchestrators/character"
	"github.com/soulforge/cultivation-api/internal/pkg/idgen"
	"github.com/soulforge/cultivation-api/internal/redis"
	characterrepo "github.com/soulforge/cultivation-api/internal/repositories/character"
	"github.com/soulforge/cultivation-api/internal/rules"
	charactersvc "github.com/soulforge/cultivation-api/internal/services/character"
)

// buildService wires the full stack: Redis client, repository, rules,
// engine, and orchestrator. The returned cleanup closes the Redis client.
func buildService() (charactersvc.Service, func(), error) {
	client, err := redis.NewClient(redisAddr, &redis.Options{
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis at %s is unreachable: %w", redisAddr, err)
	}

	repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create character repository: %w", err)
	}

	eng, err := engine.New(&engine.Config{
		Realms:  rules.NewStaticRealmTable(),
		Catalog: rules.NewStaticItemCatalog(),
		Bonuses: rules.NewStaticBonusProvider(nil),
		Roller:  engine.NewDiceRoller(),
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	orch, err := charorch.New(&charorch.Config{
		CharacterRepo: repo,
		Engine:        eng,
		IDGenerator:   idgen.NewPrefixed("char"),
	})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
	}
	return orch, cleanup, nil
}
