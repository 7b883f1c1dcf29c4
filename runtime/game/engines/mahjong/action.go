package mahjong

import (
	"fmt"
	"sort"
	"strings"
)

type ActionType int

const (
	ActionDiscard   ActionType = iota // 打牌
	ActionChi                         // 吃
	ActionPon                         // 碰
	ActionOpenKan                     // 大明杠
	ActionClosedKan                   // 暗杠
	ActionAddedKan                    // 加杠
	ActionTsumo                       // 自摸
	ActionRon                         // 荣和
	ActionRiichi                      // 立直宣言
	ActionKyuushu                     // 九种九牌
	ActionNoAction                    // 不鸣牌（过）
)

func (t ActionType) String() string {
	switch t {
	case ActionDiscard:
		return "Discard"
	case ActionChi:
		return "Chi"
	case ActionPon:
		return "Pon"
	case ActionOpenKan:
		return "OpenKan"
	case ActionClosedKan:
		return "ClosedKan"
	case ActionAddedKan:
		return "AddedKan"
	case ActionTsumo:
		return "Tsumo"
	case ActionRon:
		return "Ron"
	case ActionRiichi:
		return "Riichi"
	case ActionKyuushu:
		return "Kyuushu"
	case ActionNoAction:
		return "NoAction"
	default:
		return "Unknown"
	}
}

// 动作编号空间
const (
	idxDiscard   = 0   // 34 种 + 3 张赤5
	idxChi       = 37  // 21 种顺子 × 鸣牌位置 3 × 是否用赤5
	idxPon       = 163 // 34 种 × 是否用赤5
	idxOpenKan   = 231
	idxClosedKan = 265
	idxAddedKan  = 299
	idxTsumo     = 333
	idxRon       = 334
	idxRiichi    = 335
	idxKyuushu   = 336
	idxNoAction  = 337

	NumActions = 338
)

// Action 玩家动作
// Discard: Tile 为打出的牌
// Chi/Pon/OpenKan: Tile 为鸣入的牌，Using 为手里拿出的牌
// ClosedKan: Tile 为其中一张，Using 为四张
// AddedKan: Tile 为加上去的那张
// Tsumo/Ron: Tile 为和了牌
type Action struct {
	Type  ActionType `json:"type" bson:"type"`
	Tile  Tile       `json:"tile" bson:"tile"`
	Using []Tile     `json:"using,omitempty" bson:"using,omitempty"`
}

func NewDiscard(t Tile) Action { return Action{Type: ActionDiscard, Tile: t} }

func NoAction() Action { return Action{Type: ActionNoAction} }

func usesRed(tiles []Tile) bool {
	for _, t := range tiles {
		if t.Red {
			return true
		}
	}
	return false
}

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Index 动作编号，同一个编号的动作在规则上等价
func (a Action) Index() int {
	switch a.Type {
	case ActionDiscard:
		return idxDiscard + a.Tile.valueKey()
	case ActionChi:
		start := a.Tile.Type
		for _, t := range a.Using {
			if t.Type < start {
				start = t.Type
			}
		}
		seq := start.Suit()*7 + start.Number() - 1
		pos := int(a.Tile.Type - start)
		return idxChi + (seq*3+pos)*2 + boolIdx(usesRed(a.Using))
	case ActionPon:
		return idxPon + int(a.Tile.Type)*2 + boolIdx(usesRed(a.Using))
	case ActionOpenKan:
		return idxOpenKan + int(a.Tile.Type)
	case ActionClosedKan:
		return idxClosedKan + int(a.Tile.Type)
	case ActionAddedKan:
		return idxAddedKan + int(a.Tile.Type)
	case ActionTsumo:
		return idxTsumo
	case ActionRon:
		return idxRon
	case ActionRiichi:
		return idxRiichi
	case ActionKyuushu:
		return idxKyuushu
	case ActionNoAction:
		return idxNoAction
	default:
		return -1
	}
}

func (a Action) String() string {
	switch a.Type {
	case ActionDiscard, ActionClosedKan, ActionAddedKan, ActionTsumo, ActionRon:
		return fmt.Sprintf("%s(%s)", a.Type, a.Tile)
	case ActionChi, ActionPon, ActionOpenKan:
		using := make([]string, 0, len(a.Using))
		for _, t := range a.Using {
			using = append(using, t.String())
		}
		return fmt.Sprintf("%s(%s+%s)", a.Type, a.Tile, strings.Join(using, ""))
	default:
		return a.Type.String()
	}
}

func (a Action) clone() Action {
	a.Using = append([]Tile(nil), a.Using...)
	return a
}

func sortActions(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Index() < actions[j].Index()
	})
}

// dedupActions 要求已排序，编号相同的只保留第一个
func dedupActions(actions []Action) []Action {
	out := actions[:0]
	last := -1
	for _, a := range actions {
		if idx := a.Index(); idx != last {
			out = append(out, a)
			last = idx
		}
	}
	return out
}

// FindAction 在合法动作中查找编号相同的动作
func FindAction(legal []Action, a Action) (Action, bool) {
	idx := a.Index()
	for _, l := range legal {
		if l.Index() == idx {
			return l, true
		}
	}
	return Action{}, false
}

// SameTiles 提交的动作与合法动作用到的牌种（含赤宝牌）一致，不区分同种牌的哪一张。
// 杠可以不写 Using，此时由牌种决定
func SameTiles(a, legal Action) bool {
	if len(a.Using) == 0 && (a.Type == ActionClosedKan || a.Type == ActionOpenKan || a.Type == ActionAddedKan) {
		return true
	}
	if len(a.Using) != len(legal.Using) {
		return false
	}
	type face struct {
		tt  TileType
		red bool
	}
	count := map[face]int{}
	for _, t := range legal.Using {
		count[face{t.Type, t.Red}]++
	}
	for _, t := range a.Using {
		f := face{t.Type, t.Red}
		if count[f] == 0 {
			return false
		}
		count[f]--
	}
	return true
}

// ActionFromIndex 由编号取回合法动作
func ActionFromIndex(legal []Action, idx int) (Action, error) {
	if idx < 0 || idx >= NumActions {
		return Action{}, newMalformed("动作编号越界: %d", idx)
	}
	for _, l := range legal {
		if l.Index() == idx {
			return l, nil
		}
	}
	return Action{}, &IllegalActionError{Seat: -1, Reason: fmt.Sprintf("编号 %d 不在合法动作中", idx)}
}

// Event 历史记录中的一条
type Event struct {
	Seat   int    `json:"seat" bson:"seat"`
	Action Action `json:"action" bson:"action"`
}

// ActionHistory 一局内已执行的动作，只追加
type ActionHistory struct {
	events []Event
}

func (h *ActionHistory) append(seat int, a Action) {
	h.events = append(h.events, Event{Seat: seat, Action: a.clone()})
}

func (h *ActionHistory) Len() int { return len(h.events) }

// Events 返回副本
func (h *ActionHistory) Events() []Event {
	out := make([]Event, len(h.events))
	for i, e := range h.events {
		out[i] = Event{Seat: e.Seat, Action: e.Action.clone()}
	}
	return out
}
