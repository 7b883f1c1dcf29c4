package agent

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"mjx/runtime/game/engines/mahjong"
)

// Agent 给定观测返回一个动作，必须是 obs.LegalActions() 之一
type Agent interface {
	Act(obs *mahjong.Observation) mahjong.Action
}

type named interface {
	Name() string
}

// NameOf 记录里使用的 agent 名称
func NameOf(a Agent) string {
	if n, ok := a.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", a)
}

// Factory 每局对局都新建 agent，seed 由对局种子派生
type Factory func(seed uint64) Agent

var registry = map[string]Factory{
	"random":    func(seed uint64) Agent { return NewRandomAgent(seed) },
	"rule":      func(uint64) Agent { return NewRuleBasedAgent() },
	"tsumogiri": func(uint64) Agent { return TsumogiriAgent{} },
}

// Lookup 按名称取 agent 工厂
func Lookup(name string) (Factory, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("未知的 agent: %s (可选: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RandomAgent 在合法动作中均匀随机
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(int64(seed)))}
}

func (a *RandomAgent) Name() string { return "random" }

func (a *RandomAgent) Act(obs *mahjong.Observation) mahjong.Action {
	legal := obs.LegalActions()
	if len(legal) == 0 {
		return mahjong.NoAction()
	}
	return legal[a.rng.Intn(len(legal))]
}

// TsumogiriAgent 能和就和，否则摸切，从不鸣牌
type TsumogiriAgent struct{}

func (TsumogiriAgent) Name() string { return "tsumogiri" }

func (TsumogiriAgent) Act(obs *mahjong.Observation) mahjong.Action {
	legal := obs.LegalActions()
	if a, ok := pick(legal, mahjong.ActionTsumo, mahjong.ActionRon); ok {
		return a
	}
	if drawn, ok := obs.Drawn(); ok {
		if a, ok := mahjong.FindAction(legal, mahjong.NewDiscard(drawn)); ok {
			return a
		}
	}
	if a, ok := pick(legal, mahjong.ActionNoAction); ok {
		return a
	}
	return legal[len(legal)-1]
}

// pick 按给定类型的顺序返回第一个匹配的合法动作
func pick(legal []mahjong.Action, types ...mahjong.ActionType) (mahjong.Action, bool) {
	for _, t := range types {
		for _, a := range legal {
			if a.Type == t {
				return a, true
			}
		}
	}
	return mahjong.Action{}, false
}
