package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mjx/common/config"
	"mjx/common/log"
	"mjx/core/container"
	"mjx/runtime/game/agent"
	"mjx/runtime/game/engines/mahjong"
	"mjx/runtime/game/runner"
)

// RulesFromConf 配置转换成引擎规则
func RulesFromConf(c config.RulesConf) mahjong.Rules {
	return mahjong.Rules{
		InitialPoints: c.InitialPoints,
		Rounds:        c.Rounds,
		MaxRounds:     c.MaxRounds,
		TargetPoints:  c.TargetPoints,
		RedFives:      c.RedFives,
		OpenTanyao:    c.OpenTanyao,
		MaxRon:        c.MaxRon,
		ThreeRonAbort: c.ThreeRonAbort,
		Tobi:          c.Tobi,
		AgariYame:     c.AgariYame,
	}
}

// RunnerOptions 按配置组装 runner 参数
func RunnerOptions(conf *config.Config) (runner.Options, error) {
	opts := runner.Options{
		Games:            conf.Runner.Games,
		Parallel:         conf.Runner.Parallel,
		Seed:             conf.Runner.Seed,
		Rules:            RulesFromConf(conf.Rules),
		ProgressInterval: time.Duration(conf.Runner.ProgressInterval) * time.Second,
		OnIllegal:        conf.Runner.OnIllegal,
	}
	if len(conf.Runner.Agents) != mahjong.NumPlayers {
		return opts, fmt.Errorf("需要 %d 个 agent: %v", mahjong.NumPlayers, conf.Runner.Agents)
	}
	for seat, name := range conf.Runner.Agents {
		f, err := agent.Lookup(name)
		if err != nil {
			return opts, err
		}
		opts.Agents[seat] = f
		opts.AgentNames[seat] = name
	}
	return opts, nil
}

// Run 跑完配置的全部对局，或收到中断信号时取消
func Run(ctx context.Context, conf *config.Config) (runner.Summary, error) {
	opts, err := RunnerOptions(conf)
	if err != nil {
		return runner.Summary{}, err
	}

	sinks, err := container.NewSinkContainer(ctx, conf, opts.AgentNames)
	if err != nil {
		return runner.Summary{}, err
	}
	defer func() {
		if err := sinks.Close(); err != nil {
			log.Error("关闭输出组件失败: %v", err)
		}
	}()

	r, err := runner.New(opts, sinks.Sinks()...)
	if err != nil {
		return runner.Summary{}, err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	log.Info("开始模拟: %d 场, 并行 %d, seed=%d, agents=%v", opts.Games, opts.Parallel, opts.Seed, opts.AgentNames)
	summary, err := r.Run(ctx)
	if err != nil {
		return summary, err
	}

	if board := sinks.RankingBoard(); board != nil {
		standings, err := board.Standings(ctx, uniq(opts.AgentNames[:])...)
		if err != nil {
			log.Warn("读取 redis 排行失败: %v", err)
		}
		for _, s := range standings {
			log.Info("累计排行 %s: %d 场, 名次 %v, 平均顺位 %.3f", s.Agent, s.Games, s.Ranks, s.AverageRank())
		}
	}
	return summary, nil
}

func uniq(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
