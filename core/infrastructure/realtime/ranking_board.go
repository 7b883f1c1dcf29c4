package realtime

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mjx/common/log"
	"mjx/core/domain/repository"
	"mjx/runtime/game/engines/mahjong"
)

const rankingKeyPrefix = "mjx:ranking:" // Hash: agent 名次统计

// Lua 脚本：原子性地给四个座位的 agent 累加名次与点数
// KEYS[1..4]: 每个座位 agent 对应的 Hash key
// ARGV[1..4]: 每个座位的名次 (1-4)
// ARGV[5..8]: 每个座位的终局点数
var recordRankingScript = `
for i = 1, #KEYS do
    local key = KEYS[i]
    redis.call('HINCRBY', key, 'games', 1)
    redis.call('HINCRBY', key, 'rank' .. ARGV[i], 1)
    redis.call('HINCRBY', key, 'points', ARGV[i + 4])
end
return #KEYS
`

// ScriptRunner RankingBoard 需要的 redis 能力，由 database.RedisManager 实现
type ScriptRunner interface {
	EvalScript(ctx context.Context, scriptName, script string, keys []string, args ...any) (any, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// Standing 一个 agent 的累计名次
type Standing struct {
	Agent  string
	Games  int
	Ranks  [mahjong.NumPlayers]int
	Points int
}

// AverageRank 没有对局时为 0
func (s Standing) AverageRank() float64 {
	if s.Games == 0 {
		return 0
	}
	sum := 0
	for i, c := range s.Ranks {
		sum += (i + 1) * c
	}
	return float64(sum) / float64(s.Games)
}

// RankingBoard 多个模拟进程共享的 agent 排行，存在 redis hash 中
type RankingBoard struct {
	redis  ScriptRunner
	agents [mahjong.NumPlayers]string
}

func NewRankingBoard(redis ScriptRunner, agents [mahjong.NumPlayers]string) *RankingBoard {
	return &RankingBoard{redis: redis, agents: agents}
}

func rankingKey(agent string) string {
	return rankingKeyPrefix + agent
}

// Consume 同一 agent 坐多个座位时每个座位各计一次
func (b *RankingBoard) Consume(ctx context.Context, res *mahjong.GameResult) error {
	if res == nil {
		return errors.New("对局结果为空")
	}
	keys := make([]string, mahjong.NumPlayers)
	args := make([]any, 0, 2*mahjong.NumPlayers)
	for seat := range keys {
		keys[seat] = rankingKey(b.agents[seat])
		args = append(args, res.Ranks[seat])
	}
	for seat := range keys {
		args = append(args, res.Points[seat])
	}
	if _, err := b.redis.EvalScript(ctx, "recordRanking", recordRankingScript, keys, args...); err != nil {
		log.Error("写入排行失败, gameID=%s: %v", res.ID, err)
		return errors.Join(repository.ErrRedis, err)
	}
	return nil
}

// Standings 读取指定 agent 的累计统计
func (b *RankingBoard) Standings(ctx context.Context, agents ...string) ([]Standing, error) {
	out := make([]Standing, 0, len(agents))
	for _, agent := range agents {
		fields, err := b.redis.HGetAll(ctx, rankingKey(agent))
		if err != nil {
			return nil, errors.Join(repository.ErrRedis, err)
		}
		s, err := parseStanding(agent, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStanding(agent string, fields map[string]string) (Standing, error) {
	s := Standing{Agent: agent}
	for k, v := range fields {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("排行字段 %s=%q 不是整数: %w", k, v, err)
		}
		switch {
		case k == "games":
			s.Games = n
		case k == "points":
			s.Points = n
		case strings.HasPrefix(k, "rank"):
			r, err := strconv.Atoi(strings.TrimPrefix(k, "rank"))
			if err != nil || r < 1 || r > mahjong.NumPlayers {
				return s, fmt.Errorf("排行字段非法: %s", k)
			}
			s.Ranks[r-1] = n
		}
	}
	return s, nil
}
