package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mjx/common/config"
	"mjx/common/database"
	"mjx/common/log"
	"mjx/core/infrastructure/message"
	"mjx/core/infrastructure/persistence"
	"mjx/core/infrastructure/realtime"
	"mjx/runtime/game/engines/mahjong"
	"mjx/runtime/game/record"
	"mjx/runtime/game/runner"
)

// SinkContainer 按配置创建外部组件，并组装对局结果输出
type SinkContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
	nats  *message.NatsClient
	sinks []runner.ResultSink
	board *realtime.RankingBoard

	closed bool
	mu     sync.Mutex
}

// NewSinkContainer 只连接 conf.Sinks 中开启的组件，任何一个失败都会关闭已建立的连接
func NewSinkContainer(ctx context.Context, conf *config.Config, agents [mahjong.NumPlayers]string) (*SinkContainer, error) {
	c := &SinkContainer{}
	if err := c.init(ctx, conf, agents); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *SinkContainer) init(ctx context.Context, conf *config.Config, agents [mahjong.NumPlayers]string) error {
	var err error
	if conf.Sinks.Mongo {
		if c.mongo, err = database.NewMongo(ctx, conf.DatabaseConf.MongoConf); err != nil {
			return err
		}
		repo := persistence.NewGameRecordRepository(c.mongo)
		c.sinks = append(c.sinks, record.NewPersister(repo, agents, 30*time.Second))
		log.Info("对局记录将写入 mongodb: db=%s", conf.DatabaseConf.MongoConf.Db)
	}
	if conf.Sinks.Redis {
		if c.redis, err = database.NewRedis(ctx, conf.DatabaseConf.RedisConf); err != nil {
			return err
		}
		c.board = realtime.NewRankingBoard(c.redis, agents)
		c.sinks = append(c.sinks, c.board)
		log.Info("名次统计将写入 redis")
	}
	if conf.Sinks.Nats {
		c.nats = message.NewNatsClient()
		if err = c.nats.Run(conf.NatsConf.URL); err != nil {
			return fmt.Errorf("nats 连接失败: %w", err)
		}
		c.sinks = append(c.sinks, message.NewResultPublisher(c.nats, conf.NatsConf.Subject, agents))
		log.Info("对局结果将发布到 nats: subject=%s", conf.NatsConf.Subject)
	}
	return nil
}

func (c *SinkContainer) Sinks() []runner.ResultSink { return c.sinks }

// RankingBoard 未开启 redis 时为 nil
func (c *SinkContainer) RankingBoard() *realtime.RankingBoard { return c.board }

// Close 关闭容器资源（幂等操作，可以安全地多次调用）
func (c *SinkContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	if c.nats != nil {
		errs = append(errs, c.nats.Close())
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if c.mongo != nil {
		if err := c.mongo.Close(); err != nil {
			log.Error("mongo 关闭失败: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
