package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"mjx/common/log"
	"mjx/runtime/game/agent"
	"mjx/runtime/game/engines/mahjong"
)

const (
	OnIllegalAbort    = "abort"
	OnIllegalFallback = "fallback"
)

type Options struct {
	Games            int
	Parallel         int
	Seed             uint64
	Rules            mahjong.Rules
	Agents           [mahjong.NumPlayers]agent.Factory
	AgentNames       [mahjong.NumPlayers]string
	ProgressInterval time.Duration
	OnIllegal        string
}

// Runner 并行跑多场互相独立的对局
type Runner struct {
	opts      Options
	sinks     []ResultSink
	rooms     *RoomManager
	collector *Collector
}

func New(opts Options, sinks ...ResultSink) (*Runner, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("对局数必须为正: %d", opts.Games)
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if opts.OnIllegal == "" {
		opts.OnIllegal = OnIllegalAbort
	}
	if opts.OnIllegal != OnIllegalAbort && opts.OnIllegal != OnIllegalFallback {
		return nil, fmt.Errorf("未知的非法动作处理方式: %s", opts.OnIllegal)
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	for seat, f := range opts.Agents {
		if f == nil {
			return nil, fmt.Errorf("座位 %d 缺少 agent", seat)
		}
	}
	return &Runner{
		opts:      opts,
		sinks:     sinks,
		rooms:     NewRoomManager(),
		collector: NewCollector(opts.AgentNames),
	}, nil
}

func (r *Runner) Collector() *Collector { return r.collector }

func (r *Runner) Rooms() *RoomManager { return r.rooms }

// Run 任何一场失败都会取消其余对局
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	// 种子先按顺序生成，结果与并行度无关
	seq := mahjong.NewSeedSequence(r.opts.Seed)
	seeds := make([]uint64, r.opts.Games)
	for i := range seeds {
		seeds[i] = seq.NextSeed()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallel)

	stop := make(chan struct{})
	if r.opts.ProgressInterval > 0 {
		go r.reportProgress(stop)
	}

	start := time.Now()
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			res, err := r.playGame(gctx, i, seed)
			if err != nil {
				return err
			}
			return r.publish(gctx, res)
		})
	}
	err := g.Wait()
	close(stop)

	summary := r.collector.Summary()
	if err != nil {
		return summary, err
	}
	log.Info("全部 %d 场对局完成，耗时 %s: %s", r.opts.Games, time.Since(start), summary)
	return summary, nil
}

func (r *Runner) publish(ctx context.Context, res *mahjong.GameResult) error {
	if err := r.collector.Consume(ctx, res); err != nil {
		return err
	}
	for _, sink := range r.sinks {
		if err := sink.Consume(ctx, res); err != nil {
			return fmt.Errorf("对局 %s 结果输出失败: %w", res.ID, err)
		}
	}
	return nil
}

func (r *Runner) reportProgress(stop <-chan struct{}) {
	ticker := time.NewTicker(r.opts.ProgressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			active, finished, failed := r.rooms.GetStats()
			log.Info("进度: 进行中 %d，已完成 %d/%d，失败 %d", active, finished, r.opts.Games, failed)
		}
	}
}

// playGame 每场对局单线程推进，局与局之间检查 ctx
func (r *Runner) playGame(ctx context.Context, index int, seed uint64) (*mahjong.GameResult, error) {
	game, err := mahjong.NewGameState(r.opts.Rules, mahjong.NewSeedSequence(seed), 0)
	if err != nil {
		return nil, err
	}
	agentSeeds := mahjong.NewSeedSequence(^seed)
	var agents [mahjong.NumPlayers]agent.Agent
	for seat, f := range r.opts.Agents {
		agents[seat] = f(agentSeeds.NextSeed())
	}

	room := &Room{ID: game.ID(), Index: index, Seed: seed, Agents: r.opts.AgentNames, StartedAt: time.Now()}
	if err := r.rooms.CreateRoom(room); err != nil {
		return nil, err
	}
	failed := true
	defer func() { _ = r.rooms.DeleteRoom(room.ID, failed) }()

	for !game.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		round := game.Round()
		actions := make(map[int]mahjong.Action, mahjong.NumPlayers)
		for _, seat := range round.Stage().ActingSeats() {
			actions[seat] = agents[seat].Act(round.Observe(seat))
		}
		if err := r.step(game, actions); err != nil {
			return nil, fmt.Errorf("对局 %s (seed=%d): %w", game.ID(), seed, err)
		}
	}
	failed = false
	return game.Result(), nil
}

func (r *Runner) step(game *mahjong.GameState, actions map[int]mahjong.Action) error {
	err := game.Step(actions)
	if err == nil || !mahjong.IsRecoverable(err) || r.opts.OnIllegal != OnIllegalFallback {
		return err
	}

	round := game.Round()
	log.Warn("对局 %s 收到非法动作，改用默认动作: %v", game.ID(), err)
	for seat, a := range actions {
		legal := round.LegalActions(seat)
		if len(legal) == 0 {
			return errors.Join(err, fmt.Errorf("座位 %d 没有合法动作", seat))
		}
		if canonical, ok := mahjong.FindAction(legal, a); ok {
			actions[seat] = canonical
		} else {
			actions[seat] = legal[0]
		}
	}
	return game.Step(actions)
}
