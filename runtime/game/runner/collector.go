package runner

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"mjx/core/domain/vo"
	"mjx/runtime/game/engines/mahjong"
)

// ResultSink 接收每一场结束的对局
type ResultSink interface {
	Consume(ctx context.Context, result *mahjong.GameResult) error
}

// PlayerSummary 某个座位（agent）的统计
type PlayerSummary struct {
	Seat       int     `json:"seat"`
	Name       string  `json:"name"`
	Games      int     `json:"games"`
	RankCounts [4]int  `json:"rank_counts"`
	AvgRank    float64 `json:"avg_rank"`
	AvgPoints  float64 `json:"avg_points"`
	StableDan  float64 `json:"stable_dan"` // 没有 4 位时为 +Inf
	Tier       string  `json:"tier"`
}

type Summary struct {
	Games    int                               `json:"games"`
	Rounds   int                               `json:"rounds"`
	EndKinds map[string]int                    `json:"end_kinds"`
	Players  [mahjong.NumPlayers]PlayerSummary `json:"players"`
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "games=%d rounds=%d", s.Games, s.Rounds)
	for _, p := range s.Players {
		fmt.Fprintf(&b, " | %d:%s ranks=%v avg=%.3f dan=%.2f(%s)", p.Seat, p.Name, p.RankCounts, p.AvgRank, p.StableDan, p.Tier)
	}
	return b.String()
}

// Collector 汇总所有对局，并发安全
type Collector struct {
	mu         sync.Mutex
	names      [mahjong.NumPlayers]string
	games      int
	rounds     int
	rankCounts [mahjong.NumPlayers][4]int
	pointsSum  [mahjong.NumPlayers]int
	endKinds   map[mahjong.RoundEndKind]int
}

func NewCollector(names [mahjong.NumPlayers]string) *Collector {
	return &Collector{names: names, endKinds: map[mahjong.RoundEndKind]int{}}
}

func (c *Collector) Consume(_ context.Context, res *mahjong.GameResult) error {
	if res == nil {
		return fmt.Errorf("对局结果为空")
	}
	for seat, rank := range res.Ranks {
		if rank < 1 || rank > 4 {
			return fmt.Errorf("座位 %d 名次非法: %d", seat, rank)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.games++
	c.rounds += len(res.Rounds)
	for seat, rank := range res.Ranks {
		c.rankCounts[seat][rank-1]++
		c.pointsSum[seat] += res.Points[seat]
	}
	for _, r := range res.Rounds {
		c.endKinds[r.Kind]++
	}
	return nil
}

func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{Games: c.games, Rounds: c.rounds, EndKinds: map[string]int{}}
	for k, n := range c.endKinds {
		s.EndKinds[k.String()] = n
	}
	for seat := range s.Players {
		counts := c.rankCounts[seat]
		p := PlayerSummary{Seat: seat, Name: c.names[seat], Games: c.games, RankCounts: counts}
		if c.games > 0 {
			sum := 0
			for i, n := range counts {
				sum += (i + 1) * n
			}
			p.AvgRank = float64(sum) / float64(c.games)
			p.AvgPoints = float64(c.pointsSum[seat]) / float64(c.games)
		}
		p.StableDan = StableDan(counts)
		p.Tier = vo.GetRankingByDan(p.StableDan).GetDisplayName()
		s.Players[seat] = p
	}
	return s
}

// StableDan 安定段位 = (5×1位 + 2×2位) / 4位 − 2
func StableDan(counts [4]int) float64 {
	if counts[3] == 0 {
		return math.Inf(1)
	}
	return float64(5*counts[0]+2*counts[1])/float64(counts[3]) - 2
}
