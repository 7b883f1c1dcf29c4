package mahjong

import (
	"github.com/google/uuid"

	"mjx/common/log"
)

// GameResult 一场对局的最终结果
type GameResult struct {
	ID          string          `json:"id" bson:"id"`
	FirstDealer int             `json:"first_dealer" bson:"first_dealer"`
	Rankings    [NumPlayers]int `json:"rankings" bson:"rankings"` // 第 i 名的座位
	Ranks       [NumPlayers]int `json:"ranks" bson:"ranks"`       // 每个座位的名次，1 开始
	Points      [NumPlayers]int `json:"points" bson:"points"`
	Seeds       []uint64        `json:"seeds" bson:"seeds"` // 每局使用的种子，可用 FixedSeeds 回放
	Rounds      []RoundResult   `json:"rounds" bson:"rounds"`
	Rules       Rules           `json:"rules" bson:"rules"`
}

// GameState 依次进行各局，局间更新分数板
type GameState struct {
	id          string
	rules       Rules
	seeds       SeedSource
	firstDealer int
	board       ScoreBoard
	round       *RoundState
	results     []RoundResult
	roundSeeds  []uint64
	result      *GameResult
}

func NewGameState(rules Rules, seeds SeedSource, firstDealer int) (*GameState, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if seeds == nil {
		return nil, newMalformed("缺少种子来源")
	}
	if firstDealer < 0 || firstDealer >= NumPlayers {
		return nil, newMalformed("起家座位非法: %d", firstDealer)
	}
	g := &GameState{
		id:          uuid.NewString(),
		rules:       rules,
		seeds:       seeds,
		firstDealer: firstDealer,
		board:       NewScoreBoard(rules.InitialPoints, firstDealer),
	}
	if err := g.startRound(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GameState) ID() string { return g.id }

// Round 当前这一局，对局结束后仍返回最后一局
func (g *GameState) Round() *RoundState { return g.round }

func (g *GameState) Board() ScoreBoard { return g.board }

func (g *GameState) Done() bool { return g.result != nil }

// Result 对局结束前返回 nil
func (g *GameState) Result() *GameResult {
	if g.result == nil {
		return nil
	}
	r := *g.result
	r.Seeds = append([]uint64(nil), g.result.Seeds...)
	r.Rounds = make([]RoundResult, len(g.result.Rounds))
	for i := range g.result.Rounds {
		r.Rounds[i] = *g.result.Rounds[i].clone()
	}
	return &r
}

func (g *GameState) startRound() error {
	seed := g.seeds.NextSeed()
	rs, err := NewRoundState(g.rules, g.board, seed)
	if err != nil {
		return err
	}
	g.round = rs
	g.roundSeeds = append(g.roundSeeds, seed)
	return nil
}

// Step 把动作交给当前这一局，局结束时自动进入下一局或结束对局
func (g *GameState) Step(actions map[int]Action) error {
	if g.result != nil {
		return ErrGameOver
	}
	if err := g.round.Step(actions); err != nil {
		return err
	}
	if !g.round.Done() {
		return nil
	}
	return g.advance()
}

func (g *GameState) advance() error {
	res := g.round.Result()
	g.results = append(g.results, *res)
	g.board = res.Board
	log.Debug("对局 %s 第 %d 局结束: %s", g.id, len(g.results), res.Kind)

	next := g.board
	dealerWon := false
	for _, w := range res.Wins {
		dealerWon = dealerWon || w.Winner == g.board.Dealer
	}
	if res.Renchan {
		next.Honba++
	} else {
		next.Dealer = NextSeat(next.Dealer)
		next.Round++
		if len(res.Wins) > 0 {
			next.Honba = 0
		} else {
			next.Honba++
		}
	}

	if g.shouldEnd(res, next, dealerWon) {
		g.finalize()
		return nil
	}
	g.board = next
	return g.startRound()
}

func (g *GameState) shouldEnd(res *RoundResult, next ScoreBoard, dealerWon bool) bool {
	b := g.board
	if g.rules.Tobi {
		for _, p := range b.Points {
			if p < 0 {
				return true
			}
		}
	}
	top := b.Ranking(g.firstDealer)[0]
	// 和了止め：最后一局的庄家和了或听牌，且位列第一并达到目标点数
	if g.rules.AgariYame && b.Round >= g.rules.Rounds-1 && top == b.Dealer && b.Points[top] >= g.rules.TargetPoints {
		if dealerWon || (res.Kind == RoundEndDrawExhaustive && res.Tenpai[b.Dealer]) {
			return true
		}
	}
	if next.Round >= g.rules.Rounds && b.Points[top] >= g.rules.TargetPoints {
		return true
	}
	return next.Round >= g.rules.MaxRounds
}

// finalize 剩余的立直棒归第一名
func (g *GameState) finalize() {
	ranking := g.board.Ranking(g.firstDealer)
	g.board.Points[ranking[0]] += 1000 * g.board.RiichiSticks
	g.board.RiichiSticks = 0

	res := &GameResult{
		ID:          g.id,
		FirstDealer: g.firstDealer,
		Rankings:    ranking,
		Points:      g.board.Points,
		Seeds:       append([]uint64(nil), g.roundSeeds...),
		Rounds:      g.results,
		Rules:       g.rules,
	}
	for rank, seat := range ranking {
		res.Ranks[seat] = rank + 1
	}
	g.result = res
	log.Debug("对局 %s 结束: 点数 %v 名次 %v", g.id, res.Points, res.Ranks)
}
