package record

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mjx/common/log"
	"mjx/core/domain/entity"
	"mjx/core/domain/repository"
	"mjx/runtime/game/engines/mahjong"
)

const defaultSaveTimeout = 30 * time.Second

// Persister 对局结束后把结果写入 mongo
type Persister struct {
	repo    repository.GameRecordRepository
	agents  [mahjong.NumPlayers]string
	timeout time.Duration
}

func NewPersister(repo repository.GameRecordRepository, agents [mahjong.NumPlayers]string, timeout time.Duration) *Persister {
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}
	return &Persister{repo: repo, agents: agents, timeout: timeout}
}

// Consume 先写对局记录再批量写局记录
func (p *Persister) Consume(ctx context.Context, res *mahjong.GameResult) error {
	if res == nil {
		return errors.New("对局结果为空")
	}
	game, rounds := BuildRecords(res, p.agents)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.repo.SaveGameRecord(ctx, game); err != nil {
		return fmt.Errorf("保存对局记录失败, gameID=%s: %w", res.ID, err)
	}
	if err := p.repo.SaveRoundRecords(ctx, rounds); err != nil {
		return fmt.Errorf("保存局记录失败, gameID=%s: %w", res.ID, err)
	}
	log.Debug("对局记录保存成功: gameID=%s, rounds=%d", res.ID, len(rounds))
	return nil
}

// BuildRecords 把引擎结果转换成文档，种子按位转成 int64
func BuildRecords(res *mahjong.GameResult, agents [mahjong.NumPlayers]string) (*entity.GameRecord, []*entity.RoundRecord) {
	players := make([]entity.PlayerInfo, mahjong.NumPlayers)
	for seat := range players {
		players[seat] = entity.PlayerInfo{SeatIndex: seat, AgentName: agents[seat]}
	}
	game := entity.NewGameRecord(res.ID, entity.GameTypeRiichi4p, players)
	game.FirstDealer = res.FirstDealer
	game.RoundCount = len(res.Rounds)
	game.Seeds = make([]int64, len(res.Seeds))
	for i, s := range res.Seeds {
		game.Seeds[i] = int64(s)
	}

	final := &entity.GameFinalResult{Points: res.Points}
	for rank, seat := range res.Rankings {
		final.Rankings = append(final.Rankings, entity.PlayerRanking{
			SeatIndex: seat,
			AgentName: agents[seat],
			Points:    res.Points[seat],
			Rank:      rank + 1,
		})
	}
	game.CompleteGame(final)

	rounds := make([]*entity.RoundRecord, 0, len(res.Rounds))
	for i := range res.Rounds {
		rounds = append(rounds, buildRound(game, i, &res.Rounds[i], res.Rounds))
	}
	return game, rounds
}

func buildRound(game *entity.GameRecord, i int, rr *mahjong.RoundResult, all []mahjong.RoundResult) *entity.RoundRecord {
	board := rr.Board
	round := entity.NewRoundRecord(game.ID, i+1, windName(board.RoundWind()), board.Round%4+1, board.Dealer, board.Honba)
	round.Seed = int64(rr.Seed)

	round.AddEvent(entity.EventTypeRoundStart, -1, map[string]interface{}{
		"dealer":          board.Dealer,
		"dora_indicators": tilesToEntity(rr.DoraIndicators),
	})
	for _, e := range rr.Events {
		if e.Action.Type == mahjong.ActionNoAction {
			continue
		}
		round.AddEvent(eventType(e.Action.Type), e.Seat, actionData(e.Action))
	}

	nextDealer := -1
	if i+1 < len(all) {
		nextDealer = all[i+1].Board.Dealer
	}
	result := &entity.RoundResult{
		EndType:    rr.Kind.String(),
		Delta:      rr.Deltas,
		Points:     board.Points,
		Tenpai:     rr.Tenpai,
		NextDealer: nextDealer,
	}
	for _, w := range rr.Wins {
		claim := entity.HuClaim{
			WinnerSeat: w.Winner,
			LoserSeat:  w.Loser,
			WinTile:    tileToEntity(w.WinTile),
			Han:        w.Score.Han,
			Fu:         w.Score.Fu,
			Yakuman:    w.Score.Yakuman,
			Points:     w.Points,
		}
		for _, y := range w.Score.Yaku {
			claim.Yaku = append(claim.Yaku, y.Yaku.String())
		}
		result.Claims = append(result.Claims, claim)
	}
	round.AddEvent(entity.EventTypeRoundEnd, -1, map[string]interface{}{
		"end_type": result.EndType,
		"deltas":   rr.Deltas[:],
	})
	round.CompleteRound(result)
	return round
}

func eventType(t mahjong.ActionType) string {
	switch t {
	case mahjong.ActionDiscard:
		return entity.EventTypeDiscard
	case mahjong.ActionChi:
		return entity.EventTypeChi
	case mahjong.ActionPon:
		return entity.EventTypePon
	case mahjong.ActionOpenKan:
		return entity.EventTypeOpenKan
	case mahjong.ActionClosedKan:
		return entity.EventTypeClosedKan
	case mahjong.ActionAddedKan:
		return entity.EventTypeAddedKan
	case mahjong.ActionRiichi:
		return entity.EventTypeRiichi
	case mahjong.ActionRon:
		return entity.EventTypeRon
	case mahjong.ActionTsumo:
		return entity.EventTypeTsumo
	case mahjong.ActionKyuushu:
		return entity.EventTypeKyuushu
	default:
		return t.String()
	}
}

func actionData(a mahjong.Action) map[string]interface{} {
	data := map[string]interface{}{"index": a.Index()}
	switch a.Type {
	case mahjong.ActionRiichi, mahjong.ActionKyuushu:
		return data
	}
	data["tile"] = tileToEntity(a.Tile)
	if len(a.Using) > 0 {
		data["using"] = tilesToEntity(a.Using)
	}
	return data
}

func tileToEntity(t mahjong.Tile) entity.Tile {
	return entity.Tile{Type: int(t.Type), ID: t.ID, Red: t.Red}
}

func tilesToEntity(tiles []mahjong.Tile) []entity.Tile {
	out := make([]entity.Tile, len(tiles))
	for i, t := range tiles {
		out[i] = tileToEntity(t)
	}
	return out
}

func windName(w mahjong.Wind) string {
	switch w {
	case mahjong.WindEast:
		return "East"
	case mahjong.WindSouth:
		return "South"
	case mahjong.WindWest:
		return "West"
	default:
		return "North"
	}
}
