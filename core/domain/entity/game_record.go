package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const GameTypeRiichi4p = "riichi_mahjong_4p"

// GameRecord 对局记录元数据（聚合根）
// 存储对局基本信息、各座位的 agent、最终结果
type GameRecord struct {
	ID          primitive.ObjectID `bson:"_id"`
	GameID      string             `bson:"game_id"`      // 引擎生成的对局 uuid
	GameType    string             `bson:"game_type"`    // "riichi_mahjong_4p"
	Players     []PlayerInfo       `bson:"players"`      // 座位与 agent
	FirstDealer int                `bson:"first_dealer"` // 起家
	Seeds       []int64            `bson:"seeds"`        // 每局种子，按位转成 int64 保存
	RoundCount  int                `bson:"round_count"`
	FinalResult *GameFinalResult   `bson:"final_result"`
	Status      string             `bson:"status"` // "completed", "aborted"
	CreatedAt   time.Time          `bson:"created_at"`
}

// PlayerInfo 座位信息
type PlayerInfo struct {
	SeatIndex int    `bson:"seat_index"`
	AgentName string `bson:"agent_name"`
}

// GameFinalResult 对局最终结果
type GameFinalResult struct {
	Rankings []PlayerRanking `bson:"rankings"` // 按名次排序
	Points   [4]int          `bson:"points"`   // 按座位索引
}

// PlayerRanking 座位名次
type PlayerRanking struct {
	SeatIndex int    `bson:"seat_index"`
	AgentName string `bson:"agent_name"`
	Points    int    `bson:"points"`
	Rank      int    `bson:"rank"` // 1-4
}

// NewGameRecord 创建对局记录
func NewGameRecord(gameID, gameType string, players []PlayerInfo) *GameRecord {
	return &GameRecord{
		ID:        primitive.NewObjectID(),
		GameID:    gameID,
		GameType:  gameType,
		Players:   players,
		Status:    "in_progress",
		CreatedAt: time.Now(),
	}
}

// CompleteGame 设置最终结果
func (gr *GameRecord) CompleteGame(finalResult *GameFinalResult) {
	gr.FinalResult = finalResult
	gr.Status = "completed"
}

// AbortGame 对局中止
func (gr *GameRecord) AbortGame() {
	gr.Status = "aborted"
}
