package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"mjx/common/config"
	"mjx/common/log"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
	scriptSHAs map[string]string
	mu         sync.RWMutex
}

func NewRedis(ctx context.Context, redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var addr string
	if redisConf.Addr != "" {
		addr = redisConf.Addr
	} else if redisConf.Host != "" && redisConf.Port > 0 {
		addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
	} else if len(redisConf.ClusterAddrs) == 0 {
		return nil, errors.New("redis 配置出错: 缺少地址")
	}

	m := &RedisManager{scriptSHAs: make(map[string]string)}
	if len(redisConf.ClusterAddrs) == 0 {
		m.Cli = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
		if err := m.Cli.Ping(ctx).Err(); err != nil {
			_ = m.Cli.Close()
			return nil, fmt.Errorf("redis 连接错误: %w", err)
		}
		return m, nil
	}

	m.ClusterCli = redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:        redisConf.ClusterAddrs,
		Password:     redisConf.Password,
		PoolSize:     redisConf.PoolSize,
		MinIdleConns: redisConf.MinIdleConns,
	})
	if err := m.ClusterCli.Ping(ctx).Err(); err != nil {
		_ = m.ClusterCli.Close()
		return nil, fmt.Errorf("redisCluster 连接错误: %w", err)
	}
	return m, nil
}

func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

func (r *RedisManager) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}
	return cli.HGetAll(ctx, key).Result()
}

// EvalScript 执行 lua 脚本，按名字缓存 SHA，NOSCRIPT 时重新加载
func (r *RedisManager) EvalScript(ctx context.Context, scriptName, script string, keys []string, args ...any) (any, error) {
	cli, err := r.GetClient()
	if err != nil {
		return nil, err
	}
	if scriptName == "" {
		return cli.Eval(ctx, script, keys, args...).Result()
	}

	r.mu.RLock()
	sha, exists := r.scriptSHAs[scriptName]
	r.mu.RUnlock()
	if exists {
		result, err := cli.EvalSha(ctx, sha, keys, args...).Result()
		if err == nil || !strings.HasPrefix(err.Error(), "NOSCRIPT") {
			return result, err
		}
	}

	sha, err = cli.ScriptLoad(ctx, script).Result()
	if err != nil {
		return nil, fmt.Errorf("加载脚本失败: %w", err)
	}
	r.mu.Lock()
	r.scriptSHAs[scriptName] = sha
	r.mu.Unlock()
	return cli.EvalSha(ctx, sha, keys, args...).Result()
}

func (r *RedisManager) Close() error {
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
