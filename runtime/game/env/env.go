package env

import (
	"mjx/runtime/game/engines/mahjong"
)

// DefaultRewards 按名次给的终局奖励（1 位 到 4 位）
var DefaultRewards = [mahjong.NumPlayers]int{90, 45, 0, -135}

// Env 多智能体环境，一次 Reset 对应一场完整对局
type Env struct {
	rules       mahjong.Rules
	rewards     [mahjong.NumPlayers]int
	firstDealer int
	game        *mahjong.GameState
}

func New(rules mahjong.Rules) *Env {
	return &Env{rules: rules, rewards: DefaultRewards}
}

// WithRewards 替换名次奖励
func (e *Env) WithRewards(r [mahjong.NumPlayers]int) *Env {
	e.rewards = r
	return e
}

// WithFirstDealer 指定起家座位，默认为 0
func (e *Env) WithFirstDealer(seat int) *Env {
	e.firstDealer = seat
	return e
}

// Reset 用 seed 开始新的一场对局
func (e *Env) Reset(seed uint64) error {
	g, err := mahjong.NewGameState(e.rules, mahjong.NewSeedSequence(seed), e.firstDealer)
	if err != nil {
		return err
	}
	e.game = g
	return nil
}

func (e *Env) Game() *mahjong.GameState { return e.game }

func (e *Env) Done() bool { return e.game != nil && e.game.Done() }

// ActingPlayers 需要给出动作的座位
func (e *Env) ActingPlayers() []int {
	if e.game == nil || e.game.Done() {
		return nil
	}
	return e.game.Round().Stage().ActingSeats()
}

// Observations 只包含需要行动的座位
func (e *Env) Observations() map[int]*mahjong.Observation {
	out := map[int]*mahjong.Observation{}
	for _, seat := range e.ActingPlayers() {
		out[seat] = e.game.Round().Observe(seat)
	}
	return out
}

func (e *Env) Step(actions map[int]mahjong.Action) error {
	if e.game == nil {
		return mahjong.ErrGameOver
	}
	return e.game.Step(actions)
}

// Rewards 对局结束前全为 0
func (e *Env) Rewards() [mahjong.NumPlayers]int {
	var out [mahjong.NumPlayers]int
	if !e.Done() {
		return out
	}
	res := e.game.Result()
	for seat, rank := range res.Ranks {
		out[seat] = e.rewards[rank-1]
	}
	return out
}

func (e *Env) GameResult() *mahjong.GameResult {
	if e.game == nil {
		return nil
	}
	return e.game.Result()
}
