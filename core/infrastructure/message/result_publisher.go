package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mjx/core/domain/repository"
	"mjx/runtime/game/engines/mahjong"
)

type Publisher interface {
	Publish(subject string, data []byte) error
}

// GameResultMessage 发布到 nats 的对局结果，不含逐局事件
type GameResultMessage struct {
	GameID   string                     `json:"game_id"`
	Agents   [mahjong.NumPlayers]string `json:"agents"`
	Rankings [mahjong.NumPlayers]int    `json:"rankings"`
	Ranks    [mahjong.NumPlayers]int    `json:"ranks"`
	Points   [mahjong.NumPlayers]int    `json:"points"`
	Rounds   []RoundSummary             `json:"rounds"`
}

type RoundSummary struct {
	Kind   string                  `json:"kind"`
	Dealer int                     `json:"dealer"`
	Honba  int                     `json:"honba"`
	Deltas [mahjong.NumPlayers]int `json:"deltas"`
	Seed   uint64                  `json:"seed"`
}

// ResultPublisher 把每场对局结果推送到一个 subject
type ResultPublisher struct {
	pub     Publisher
	subject string
	agents  [mahjong.NumPlayers]string
}

func NewResultPublisher(pub Publisher, subject string, agents [mahjong.NumPlayers]string) *ResultPublisher {
	return &ResultPublisher{pub: pub, subject: subject, agents: agents}
}

func NewGameResultMessage(res *mahjong.GameResult, agents [mahjong.NumPlayers]string) *GameResultMessage {
	msg := &GameResultMessage{
		GameID:   res.ID,
		Agents:   agents,
		Rankings: res.Rankings,
		Ranks:    res.Ranks,
		Points:   res.Points,
		Rounds:   make([]RoundSummary, len(res.Rounds)),
	}
	for i, r := range res.Rounds {
		msg.Rounds[i] = RoundSummary{
			Kind:   r.Kind.String(),
			Dealer: r.Board.Dealer,
			Honba:  r.Board.Honba,
			Deltas: r.Deltas,
			Seed:   r.Seed,
		}
	}
	return msg
}

func (p *ResultPublisher) Consume(_ context.Context, res *mahjong.GameResult) error {
	if res == nil {
		return errors.New("对局结果为空")
	}
	data, err := json.Marshal(NewGameResultMessage(res, p.agents))
	if err != nil {
		return fmt.Errorf("对局结果序列化失败: %w", err)
	}
	if err := p.pub.Publish(p.subject, data); err != nil {
		return errors.Join(repository.ErrPublish, err)
	}
	return nil
}
