package mahjong

import (
	"fmt"
	"strings"
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const (
	TileLimit    = 136
	NumTileTypes = 34
	NumPlayers   = 4
)

// Tile 一张实体牌，Type*4+ID 唯一确定这张牌
type Tile struct {
	Type TileType `json:"type" bson:"type"`
	ID   int      `json:"id" bson:"id"`   // 同种牌的第几张（0-3）
	Red  bool     `json:"red" bson:"red"`   // 赤宝牌，只有开启赤牌时 ID=0 的 5 才会标记
}

// TileFromIndex 由 0-135 的编号还原实体牌
func TileFromIndex(idx int, redFives bool) Tile {
	t := Tile{Type: TileType(idx / 4), ID: idx % 4}
	t.Red = redFives && t.ID == 0 && t.Type.IsFive()
	return t
}

func (t Tile) Index() int {
	return int(t.Type)*4 + t.ID
}

// IsRedFive 判断是否为赤宝牌
func (t Tile) IsRedFive() bool {
	return t.Red
}

// IsFive 判断是否为5牌（不区分赤普通）
func (t Tile) IsFive() bool {
	return t.Type.IsFive()
}

// valueKey 打牌时 "同一种牌" 的判定，赤5与普通5视为不同
func (t Tile) valueKey() int {
	if t.Red {
		return NumTileTypes + t.Type.Suit()
	}
	return int(t.Type)
}

func (t Tile) String() string {
	if t.Red {
		return "0" + t.Type.String()[1:]
	}
	return t.Type.String()
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsFive() bool {
	return t == Man5 || t == Pin5 || t == So5
}

func (t TileType) IsWind() bool {
	return t >= East && t <= North
}

func (t TileType) IsDragon() bool {
	return t >= White && t <= Red
}

// IsTerminal 老头牌（数牌1、9）
func (t TileType) IsTerminal() bool {
	return t.IsNumbered() && (t.Number() == 1 || t.Number() == 9)
}

// IsYaochu 幺九牌（1、9、字牌）
func (t TileType) IsYaochu() bool {
	return t.IsHonor() || t.IsTerminal()
}

// Suit 0万 1筒 2索 3字
func (t TileType) Suit() int {
	return int(t) / 9
}

// Number 数牌的点数 1-9，字牌按东南西北白发中 1-7
func (t TileType) Number() int {
	if t.IsHonor() {
		return int(t-East) + 1
	}
	return int(t)%9 + 1
}

// DoraOf 指示牌的下一张是宝牌
func (t TileType) DoraOf() TileType {
	switch {
	case t.IsNumbered():
		if t.Number() == 9 {
			return t - 8
		}
		return t + 1
	case t.IsWind():
		if t == North {
			return East
		}
		return t + 1
	default:
		if t == Red {
			return White
		}
		return t + 1
	}
}

var suitLetters = [4]string{"m", "p", "s", "z"}

func (t TileType) String() string {
	if t < Man1 || t > Red {
		return fmt.Sprintf("?%d", int(t))
	}
	return fmt.Sprintf("%d%s", t.Number(), suitLetters[t.Suit()])
}

// WindTile 风对应的字牌
func (w Wind) WindTile() TileType {
	return East + TileType(w%4)
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "东"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

// ParseTiles 解析 "123m406p11z" 形式的牌串，0 表示赤5，z 为东南西北白发中
// 按种类依次分配 ID，普通5优先使用 ID 1-3
func ParseTiles(s string) ([]Tile, error) {
	var used [NumTileTypes][4]bool
	var out []Tile
	var digits []int
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == 'm' || r == 'p' || r == 's' || r == 'z':
			suit := strings.IndexRune("mpsz", r)
			for _, d := range digits {
				red := d == 0
				if red {
					d = 5
				}
				if d < 1 || d > 9 || (suit == 3 && d > 7) || (red && suit == 3) {
					return nil, fmt.Errorf("非法的牌 %d%c", d, r)
				}
				tt := TileType(suit*9 + d - 1)
				id, ok := pickTileID(&used[tt], tt, red)
				if !ok {
					return nil, fmt.Errorf("牌 %s 超过 4 张", tt)
				}
				out = append(out, Tile{Type: tt, ID: id, Red: red})
			}
			digits = digits[:0]
		case r == ' ':
		default:
			return nil, fmt.Errorf("无法解析的字符 %q", r)
		}
	}
	if len(digits) > 0 {
		return nil, fmt.Errorf("牌串缺少花色后缀: %q", s)
	}
	return out, nil
}

func pickTileID(used *[4]bool, tt TileType, red bool) (int, bool) {
	order := [4]int{0, 1, 2, 3}
	if tt.IsFive() {
		if red {
			order = [4]int{0, -1, -1, -1}
		} else {
			order = [4]int{1, 2, 3, -1}
		}
	}
	for _, id := range order {
		if id >= 0 && !used[id] {
			used[id] = true
			return id, true
		}
	}
	return 0, false
}

// MustParseTiles 测试与固定牌谱使用
func MustParseTiles(s string) []Tile {
	tiles, err := ParseTiles(s)
	if err != nil {
		panic(err)
	}
	return tiles
}

type MeldType int

const (
	MeldChi       MeldType = iota // 吃
	MeldPon                       // 碰
	MeldOpenKan                   // 大明杠
	MeldClosedKan                 // 暗杠
	MeldAddedKan                  // 加杠
)

func (m MeldType) String() string {
	switch m {
	case MeldChi:
		return "Chi"
	case MeldPon:
		return "Pon"
	case MeldOpenKan:
		return "OpenKan"
	case MeldClosedKan:
		return "ClosedKan"
	case MeldAddedKan:
		return "AddedKan"
	default:
		return "Unknown"
	}
}

// Meld 副露，Called 是鸣入的牌，From 为来源座位，暗杠为 -1
type Meld struct {
	Type   MeldType `json:"type" bson:"type"`
	Tiles  []Tile   `json:"tiles" bson:"tiles"`
	Called Tile     `json:"called" bson:"called"`
	From   int      `json:"from" bson:"from"`
}

func (m Meld) IsOpen() bool {
	return m.Type != MeldClosedKan
}

func (m Meld) IsKan() bool {
	return m.Type == MeldOpenKan || m.Type == MeldClosedKan || m.Type == MeldAddedKan
}

// Kind 面子里最小的牌种
func (m Meld) Kind() TileType {
	kind := m.Tiles[0].Type
	for _, t := range m.Tiles[1:] {
		if t.Type < kind {
			kind = t.Type
		}
	}
	return kind
}

func (m Meld) clone() Meld {
	m.Tiles = append([]Tile(nil), m.Tiles...)
	return m
}

// RoundEndKind 一局的结束方式
type RoundEndKind int

const (
	RoundEndNone           RoundEndKind = iota
	RoundEndTsumo                       // 自摸
	RoundEndRon                         // 荣和
	RoundEndDrawExhaustive              // 荒牌流局
	RoundEndNineTerminals               // 九种九牌
	RoundEndFourWinds                   // 四风连打
	RoundEndFourRiichi                  // 四家立直
	RoundEndFourKans                    // 四杠散了
	RoundEndThreeRon                    // 三家和了
)

func (k RoundEndKind) String() string {
	switch k {
	case RoundEndTsumo:
		return "TSUMO"
	case RoundEndRon:
		return "RON"
	case RoundEndDrawExhaustive:
		return "DRAW_EXHAUSTIVE"
	case RoundEndNineTerminals:
		return "DRAW_NINE_TERMINALS"
	case RoundEndFourWinds:
		return "DRAW_FOUR_WINDS"
	case RoundEndFourRiichi:
		return "DRAW_FOUR_RIICHI"
	case RoundEndFourKans:
		return "DRAW_FOUR_KANS"
	case RoundEndThreeRon:
		return "DRAW_3RON"
	default:
		return "NONE"
	}
}

// IsAbort 中途流局
func (k RoundEndKind) IsAbort() bool {
	return k >= RoundEndNineTerminals
}
