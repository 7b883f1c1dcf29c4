package mahjong

// Observation 某个座位能看到的信息，只读，不会改变局面
type Observation struct {
	who   int
	state *RoundState
}

func (o *Observation) Who() int { return o.who }

// Hand 自己的暗手
func (o *Observation) Hand() []Tile { return o.state.hands[o.who].Tiles() }

func (o *Observation) Drawn() (Tile, bool) { return o.state.hands[o.who].Drawn() }

func (o *Observation) Counts34() Hand34 { return o.state.hands[o.who].Counts34() }

func (o *Observation) Melds(seat int) []Meld { return o.state.hands[seat].Melds() }

func (o *Observation) River(seat int) []RiverEntry { return o.state.rivers[seat].Entries() }

func (o *Observation) Riichi(seat int) bool { return o.state.riichi[seat] }

// ConcealedCount 其他玩家只能看到暗手张数
func (o *Observation) ConcealedCount(seat int) int { return len(o.state.hands[seat].tiles) }

func (o *Observation) DoraIndicators() []Tile { return o.state.wall.DoraIndicators() }

func (o *Observation) WallRemaining() int { return o.state.wall.Remaining() }

func (o *Observation) Board() ScoreBoard { return o.state.board }

func (o *Observation) Stage() Stage { return o.state.stage.clone() }

// History 公开的动作记录，不含任何人的摸牌
func (o *Observation) History() []Event { return o.state.history.Events() }

// LegalActions 只包含自己的合法动作
func (o *Observation) LegalActions() []Action { return o.state.LegalActions(o.who) }

// Visible34 自己能看到的各牌种张数：自己的暗手、所有副露、牌河、宝牌指示牌
func (o *Observation) Visible34() [NumTileTypes]uint8 {
	var v [NumTileTypes]uint8
	s := o.state
	for _, t := range s.hands[o.who].tiles {
		v[t.Type]++
	}
	for seat := range s.hands {
		for _, m := range s.hands[seat].melds {
			for _, t := range m.Tiles {
				v[t.Type]++
			}
		}
		for _, t := range s.rivers[seat].tilesInRiver() {
			v[t.Type]++
		}
	}
	s.wall.Visible34(&v)
	return v
}

// PlayerView 一名玩家的公开信息
type PlayerView struct {
	Seat      int          `json:"seat" bson:"seat"`
	Wind      Wind         `json:"wind" bson:"wind"`
	Points    int          `json:"points" bson:"points"`
	Riichi    bool         `json:"riichi" bson:"riichi"`
	Concealed int          `json:"concealed" bson:"concealed"`
	Melds     []Meld       `json:"melds" bson:"melds"`
	River     []RiverEntry `json:"river" bson:"river"`
}

// ObservationView Observation 的值拷贝，可以交给日志或外部程序
type ObservationView struct {
	Who           int                    `json:"who" bson:"who"`
	Hand          []Tile                 `json:"hand" bson:"hand"`
	Drawn         *Tile                  `json:"drawn,omitempty" bson:"drawn,omitempty"`
	Board         ScoreBoard             `json:"board" bson:"board"`
	Stage         Stage                  `json:"stage" bson:"stage"`
	Dora          []Tile                 `json:"dora" bson:"dora"`
	WallRemaining int                    `json:"wall_remaining" bson:"wall_remaining"`
	Players       [NumPlayers]PlayerView `json:"players" bson:"players"`
	History       []Event                `json:"history" bson:"history"`
	Legal         []Action               `json:"legal" bson:"legal"`
}

func (o *Observation) Snapshot() ObservationView {
	v := ObservationView{
		Who:           o.who,
		Hand:          o.Hand(),
		Board:         o.Board(),
		Stage:         o.Stage(),
		Dora:          o.DoraIndicators(),
		WallRemaining: o.WallRemaining(),
		History:       o.History(),
		Legal:         o.LegalActions(),
	}
	if t, ok := o.Drawn(); ok {
		v.Drawn = &t
	}
	for seat := 0; seat < NumPlayers; seat++ {
		v.Players[seat] = PlayerView{
			Seat:      seat,
			Wind:      o.state.board.SeatWind(seat),
			Points:    o.state.board.Points[seat],
			Riichi:    o.Riichi(seat),
			Concealed: o.ConcealedCount(seat),
			Melds:     o.Melds(seat),
			River:     o.River(seat),
		}
	}
	return v
}
