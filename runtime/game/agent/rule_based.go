package agent

import (
	"mjx/runtime/game/engines/mahjong"
)

// RuleBasedAgent 和了优先、能立直就立直、从不鸣牌，打牌时向听数最小、进张最多
type RuleBasedAgent struct {
	searcher *mahjong.Searcher
}

func NewRuleBasedAgent() *RuleBasedAgent {
	return &RuleBasedAgent{searcher: mahjong.DefaultSearcher()}
}

func (a *RuleBasedAgent) Name() string { return "rule" }

func (a *RuleBasedAgent) Act(obs *mahjong.Observation) mahjong.Action {
	legal := obs.LegalActions()
	if len(legal) == 0 {
		return mahjong.NoAction()
	}
	if act, ok := pick(legal, mahjong.ActionTsumo, mahjong.ActionRon, mahjong.ActionRiichi, mahjong.ActionKyuushu); ok {
		return act
	}
	if act, ok := pick(legal, mahjong.ActionNoAction); ok {
		return act
	}

	var discards []mahjong.Action
	for _, l := range legal {
		if l.Type == mahjong.ActionDiscard {
			discards = append(discards, l)
		}
	}
	if len(discards) == 0 {
		return legal[0]
	}
	return a.bestDiscard(obs, discards)
}

// bestDiscard 同分时取编号小的，保证结果确定
func (a *RuleBasedAgent) bestDiscard(obs *mahjong.Observation, discards []mahjong.Action) mahjong.Action {
	counts := obs.Counts34()
	melds := len(obs.Melds(obs.Who()))
	visible := obs.Visible34()

	best := discards[0]
	bestShanten, bestUkeire := 99, -1
	for _, d := range discards {
		h13 := counts
		h13[d.Tile.Type]--
		shanten := a.searcher.ShantenAll(h13, melds)
		ukeire := a.ukeire(h13, melds, shanten, &visible)
		if shanten < bestShanten || (shanten == bestShanten && ukeire > bestUkeire) {
			best, bestShanten, bestUkeire = d, shanten, ukeire
		}
	}
	return best
}

// ukeire 摸到后能让向听数前进的牌的剩余张数
func (a *RuleBasedAgent) ukeire(h13 mahjong.Hand34, melds, shanten int, visible *[mahjong.NumTileTypes]uint8) int {
	n := 0
	for t := 0; t < mahjong.NumTileTypes; t++ {
		left := 4 - int(visible[t])
		if left <= 0 {
			continue
		}
		work := h13
		work[t]++
		if a.searcher.ShantenAll(work, melds) < shanten {
			n += left
		}
	}
	return n
}
