package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundRecord 局记录（每局一个文档）
// 存储该局的动作流和结算
type RoundRecord struct {
	ID           primitive.ObjectID `bson:"_id"`
	GameRecordID primitive.ObjectID `bson:"game_record_id"` // 关联对局记录
	RoundNumber  int                `bson:"round_number"`   // 对局中的第几局，从 1 开始
	RoundWind    string             `bson:"round_wind"`     // 场风 "East", "South", "West", "North"
	Kyoku        int                `bson:"kyoku"`          // 场内第几局 (1-4)
	DealerIndex  int                `bson:"dealer_index"`
	Honba        int                `bson:"honba"`
	Seed         int64              `bson:"seed"`
	Events       []RoundEvent       `bson:"events"`       // 事件流（按顺序）
	RoundResult  *RoundResult       `bson:"round_result"` // 结算
	CreatedAt    time.Time          `bson:"created_at"`
}

// RoundEvent 一个动作（只存事件，不存快照）
type RoundEvent struct {
	Sequence  int                    `bson:"sequence"`   // 该局内从 0 递增
	EventType string                 `bson:"event_type"` // 事件类型
	SeatIndex int                    `bson:"seat_index"` // 操作座位（-1 表示系统事件）
	Data      map[string]interface{} `bson:"data"`
}

// RoundResult 局结算
type RoundResult struct {
	EndType    string    `bson:"end_type"` // "RON", "TSUMO", "DRAW_EXHAUSTIVE", "DRAW_3RON", "DRAW_FOUR_KANS" ...
	Claims     []HuClaim `bson:"claims"`
	Delta      [4]int    `bson:"delta"`       // 点数变化（按座位索引）
	Points     [4]int    `bson:"points"`      // 结算后的点数（按座位索引）
	Tenpai     [4]bool   `bson:"tenpai"`      // 流局时的听牌情况
	NextDealer int       `bson:"next_dealer"` // 下一局庄家（-1 表示对局结束）
}

// HuClaim 和了信息
type HuClaim struct {
	WinnerSeat int      `bson:"winner_seat"`
	LoserSeat  int      `bson:"loser_seat"` // 自摸为 -1
	WinTile    Tile     `bson:"win_tile"`
	Han        int      `bson:"han"`
	Fu         int      `bson:"fu"`
	Yakuman    int      `bson:"yakuman"`
	Yaku       []string `bson:"yaku"`
	Points     int      `bson:"points"`
}

// Tile 牌（用于存储）
type Tile struct {
	Type int  `bson:"type"`
	ID   int  `bson:"id"`
	Red  bool `bson:"red,omitempty"`
}

// NewRoundRecord 创建局记录
func NewRoundRecord(gameRecordID primitive.ObjectID, roundNumber int, roundWind string, kyoku, dealerIndex, honba int) *RoundRecord {
	return &RoundRecord{
		ID:           primitive.NewObjectID(),
		GameRecordID: gameRecordID,
		RoundNumber:  roundNumber,
		RoundWind:    roundWind,
		Kyoku:        kyoku,
		DealerIndex:  dealerIndex,
		Honba:        honba,
		Events:       make([]RoundEvent, 0, 100),
		CreatedAt:    time.Now(),
	}
}

// AddEvent 追加事件
func (rr *RoundRecord) AddEvent(eventType string, seatIndex int, data map[string]interface{}) {
	rr.Events = append(rr.Events, RoundEvent{
		Sequence:  len(rr.Events),
		EventType: eventType,
		SeatIndex: seatIndex,
		Data:      data,
	})
}

// CompleteRound 设置结算
func (rr *RoundRecord) CompleteRound(result *RoundResult) {
	rr.RoundResult = result
}

// 事件类型常量
const (
	EventTypeRoundStart = "round_start"
	EventTypeDiscard    = "discard"
	EventTypeChi        = "chi"
	EventTypePon        = "pon"
	EventTypeOpenKan    = "open_kan"
	EventTypeClosedKan  = "closed_kan"
	EventTypeAddedKan   = "added_kan"
	EventTypeRiichi     = "riichi"
	EventTypeRon        = "ron"
	EventTypeTsumo      = "tsumo"
	EventTypeKyuushu    = "kyuushu"
	EventTypeRoundEnd   = "round_end"
)
