package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/oversightlabs/approval-service/types"
)

const (
	projectKeyPrefix = "projects:data:"
	projectIndexAll  = "projects:index:all"
)

// RedisStore persists projects as JSON documents in Redis. A production
// deployment selects this backend through configuration; the core
// contracts are identical to the in-memory store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a project store on an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, p *types.Project) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, projectKeyPrefix+p.ID, data, 0)
	pipe.SAdd(ctx, projectIndexAll, p.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store project %s: %w", p.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*types.Project, error) {
	data, err := s.client.Get(ctx, projectKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var p types.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *RedisStore) List(ctx context.Context) ([]*types.Project, error) {
	ids, err := s.client.SMembers(ctx, projectIndexAll).Result()
	if err != nil {
		return nil, err
	}

	var projects []*types.Project
	for _, id := range ids {
		p, err := s.Get(ctx, id)
		if err == nil {
			projects = append(projects, p)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *RedisStore) Update(ctx context.Context, p *types.Project) error {
	exists, err := s.client.Exists(ctx, projectKeyPrefix+p.ID).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, projectKeyPrefix+p.ID, data, 0).Err()
}

// Delete removes a project document and its index entry. Only the
// maintenance CLI uses this; the HTTP surface never deletes projects.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, projectKeyPrefix+id)
	pipe.SRem(ctx, projectIndexAll, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
