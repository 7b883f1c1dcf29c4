package mahjong

import "fmt"

// StageKind 一局中的阶段
type StageKind int

const (
	StageAfterDraw     StageKind = iota // 摸牌后，当前玩家 14 张，等待打牌/暗杠/加杠/自摸/立直/九种九牌
	StageAfterRiichi                    // 已宣言立直，等待打出一张保持听牌的牌
	StageAfterDiscard                   // 打牌后，等待其他玩家 荣和/碰/杠/吃/过
	StageAfterCall                      // 吃碰后，鸣牌者打牌
	StageAfterKanAdded                  // 加杠后，等待抢杠
	StageRoundEnd                       // 本局结束
)

func (k StageKind) String() string {
	switch k {
	case StageAfterDraw:
		return "AfterDraw"
	case StageAfterRiichi:
		return "AfterRiichi"
	case StageAfterDiscard:
		return "AfterDiscard"
	case StageAfterCall:
		return "AfterCall"
	case StageAfterKanAdded:
		return "AfterKanAdded"
	case StageRoundEnd:
		return "RoundEnd"
	default:
		return "Unknown"
	}
}

// IsReactive 牌被打出/加杠后，等待多个玩家同时响应
func (k StageKind) IsReactive() bool {
	return k == StageAfterDiscard || k == StageAfterKanAdded
}

// Stage Actor 是出牌/加杠的玩家，Pending 是响应窗口中还需要表态的玩家
type Stage struct {
	Kind    StageKind `json:"kind" bson:"kind"`
	Actor   int       `json:"actor" bson:"actor"`
	Pending []int     `json:"pending,omitempty" bson:"pending,omitempty"`
}

func (s Stage) String() string {
	if s.Kind.IsReactive() {
		return fmt.Sprintf("%s(actor=%d pending=%v)", s.Kind, s.Actor, s.Pending)
	}
	return fmt.Sprintf("%s(actor=%d)", s.Kind, s.Actor)
}

// ActingSeats 当前需要给出动作的玩家
func (s Stage) ActingSeats() []int {
	switch {
	case s.Kind == StageRoundEnd:
		return nil
	case s.Kind.IsReactive():
		return append([]int(nil), s.Pending...)
	default:
		return []int{s.Actor}
	}
}

func (s Stage) clone() Stage {
	s.Pending = append([]int(nil), s.Pending...)
	return s
}

// NextSeat 下家
func NextSeat(seat int) int {
	return (seat + 1) % NumPlayers
}

// seatsAfter 从 seat 的下家开始依次排列的其他三家
func seatsAfter(seat int) [NumPlayers - 1]int {
	return [NumPlayers - 1]int{(seat + 1) % NumPlayers, (seat + 2) % NumPlayers, (seat + 3) % NumPlayers}
}

// distance 从 from 逆时针数到 to 要几步
func distance(from, to int) int {
	return (to - from + NumPlayers) % NumPlayers
}
