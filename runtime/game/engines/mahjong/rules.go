package mahjong

import "fmt"

// Rules 对局规则
type Rules struct {
	InitialPoints int  `json:"initial_points" bson:"initial_points"`
	Rounds        int  `json:"rounds" bson:"rounds"`         // 4 东风战，8 半庄战
	MaxRounds     int  `json:"max_rounds" bson:"max_rounds"` // 西入（延长战）最多打到第几局
	TargetPoints  int  `json:"target_points" bson:"target_points"`
	RedFives      bool `json:"red_fives" bson:"red_fives"`
	OpenTanyao    bool `json:"open_tanyao" bson:"open_tanyao"`
	MaxRon        int  `json:"max_ron" bson:"max_ron"` // 一张牌最多几家同时荣和，超出的按上家优先截和
	ThreeRonAbort bool `json:"three_ron_abort" bson:"three_ron_abort"`
	Tobi          bool `json:"tobi" bson:"tobi"`             // 击飞
	AgariYame     bool `json:"agari_yame" bson:"agari_yame"` // 和了止め
}

func DefaultRules() Rules {
	return Rules{
		InitialPoints: 25000,
		Rounds:        8,
		MaxRounds:     12,
		TargetPoints:  30000,
		RedFives:      true,
		OpenTanyao:    true,
		MaxRon:        2,
		ThreeRonAbort: true,
		Tobi:          true,
		AgariYame:     true,
	}
}

func (r Rules) Validate() error {
	if r.InitialPoints <= 0 {
		return fmt.Errorf("初始点数必须为正: %d", r.InitialPoints)
	}
	if r.Rounds != 4 && r.Rounds != 8 {
		return fmt.Errorf("局数只支持 4 或 8: %d", r.Rounds)
	}
	if r.MaxRounds < r.Rounds || r.MaxRounds > 16 {
		return fmt.Errorf("最大局数非法: %d", r.MaxRounds)
	}
	if r.MaxRon < 1 || r.MaxRon > 3 {
		return fmt.Errorf("同时荣和上限非法: %d", r.MaxRon)
	}
	return nil
}

// ScoreBoard 分数板，跨局保留
type ScoreBoard struct {
	Points       [NumPlayers]int `json:"points" bson:"points"`
	Round        int             `json:"round" bson:"round"` // 0=东1局 ... 7=南4局，8 以后为西入
	Honba        int             `json:"honba" bson:"honba"`
	RiichiSticks int             `json:"riichi_sticks" bson:"riichi_sticks"`
	Dealer       int             `json:"dealer" bson:"dealer"`
}

func NewScoreBoard(initialPoints int, dealer int) ScoreBoard {
	b := ScoreBoard{Dealer: dealer}
	for i := range b.Points {
		b.Points[i] = initialPoints
	}
	return b
}

// RoundWind 场风
func (b ScoreBoard) RoundWind() Wind {
	return Wind(b.Round / 4 % 4)
}

// SeatWind 自风
func (b ScoreBoard) SeatWind(seat int) Wind {
	return Wind((seat - b.Dealer + NumPlayers) % NumPlayers)
}

func (b ScoreBoard) String() string {
	return fmt.Sprintf("%s%d局 %d本场 供托%d %v", b.RoundWind(), b.Round%4+1, b.Honba, b.RiichiSticks, b.Points)
}

// Ranking 按点数从高到低排座位，同分时离起家近的在前
func (b ScoreBoard) Ranking(firstDealer int) [NumPlayers]int {
	var order [NumPlayers]int
	for i := range order {
		order[i] = (firstDealer + i) % NumPlayers
	}
	for i := 1; i < NumPlayers; i++ {
		for j := i; j > 0 && b.Points[order[j]] > b.Points[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
