package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore backs both the corpus KV and the job status store with a single
// Redis connection.
type RedisStore struct {
	client *redis.Client
	keyNS  string
}

func NewRedis(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	c := redis.NewClient(opt)
	if err := c.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: c, keyNS: "ideagen"}, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

// Client returns the underlying Redis client
func (s *RedisStore) Client() *redis.Client { return s.client }

func (s *RedisStore) corpusKey(key string) string { return fmt.Sprintf("%s:corpus:%s", s.keyNS, key) }
func (s *RedisStore) jobKey(jobID string) string {
	return fmt.Sprintf("%s:job:%s:status", s.keyNS, jobID)
}

func (s *RedisStore) Save(ctx context.Context, key, value string) {
	if err := s.client.Set(ctx, s.corpusKey(key), value, 0).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("corpus save skipped")
	}
}

func (s *RedisStore) Load(ctx context.Context, key, fallback string) string {
	v, err := s.client.Get(ctx, s.corpusKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Str("key", key).Msg("corpus load fell back")
		}
		return fallback
	}
	return v
}

func (s *RedisStore) Set(ctx context.Context, jobID string, st JobStatus) {
	m := map[string]interface{}{
		"status":   st.Status,
		"progress": st.Progress,
		"message":  st.Message,
	}
	if st.Start != nil {
		m["start"] = st.Start.Format(time.RFC3339Nano)
	}
	if st.End != nil {
		m["end"] = st.End.Format(time.RFC3339Nano)
	}
	if st.Metadata != nil {
		b, _ := json.Marshal(st.Metadata)
		m["metadata"] = string(b)
	}
	if err := s.client.HSet(ctx, s.jobKey(jobID), m).Err(); err != nil {
		log.Debug().Err(err).Str("job_id", jobID).Msg("status set skipped")
	}
	// Jobs are short-lived; let stale status entries expire on their own.
	s.client.Expire(ctx, s.jobKey(jobID), 24*time.Hour)
}

func (s *RedisStore) Get(ctx context.Context, jobID string) (JobStatus, bool) {
	res, err := s.client.HGetAll(ctx, s.jobKey(jobID)).Result()
	if err != nil || len(res) == 0 {
		return JobStatus{}, false
	}
	st := JobStatus{}
	st.Status = res["status"]
	st.Message = res["message"]
	if p, ok := res["progress"]; ok && p != "" {
		var pi int
		fmt.Sscan(p, &pi)
		st.Progress = pi
	}
	if v := res["start"]; v != "" {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			st.Start = &t
		}
	}
	if v := res["end"]; v != "" {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			st.End = &t
		}
	}
	if v := res["metadata"]; v != "" {
		_ = json.Unmarshal([]byte(v), &st.Metadata)
	}
	return st, true
}
