package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRules() Rules {
	r := DefaultRules()
	r.RedFives = false
	return r
}

// riggedState 庄家为 0 号座位，按给定的配牌与摸牌顺序排好牌山，其余牌按编号顺序放在后面
func riggedState(t *testing.T, rules Rules, hands [NumPlayers]string, draws string) *RoundState {
	t.Helper()
	var used [TileLimit]bool
	take := func(s string) []Tile {
		parsed := MustParseTiles(s)
		out := make([]Tile, 0, len(parsed))
		for _, p := range parsed {
			idx := -1
			for id := 0; id < 4; id++ {
				i := int(p.Type)*4 + id
				if used[i] {
					continue
				}
				if rules.RedFives && p.Type.IsFive() && (id == 0) != p.Red {
					continue
				}
				idx = i
				break
			}
			require.GreaterOrEqual(t, idx, 0, "牌 %s 不够", p)
			used[idx] = true
			out = append(out, TileFromIndex(idx, rules.RedFives))
		}
		return out
	}

	var dealt [NumPlayers][]Tile
	for seat, h := range hands {
		dealt[seat] = take(h)
		require.Len(t, dealt[seat], dealTiles, "座位 %d 配牌张数", seat)
	}
	order := make([]Tile, 0, TileLimit)
	for pass := 0; pass < 4; pass++ {
		lo, n := pass*4, 4
		if pass == 3 {
			n = 1
		}
		for seat := 0; seat < NumPlayers; seat++ {
			order = append(order, dealt[seat][lo:lo+n]...)
		}
	}
	order = append(order, take(draws)...)
	for i := 0; i < TileLimit; i++ {
		if !used[i] {
			order = append(order, TileFromIndex(i, rules.RedFives))
		}
	}
	require.Len(t, order, TileLimit)

	w := &TileWall{liveEnd: deadWallStart, doraCount: 1}
	copy(w.tiles[:], order)
	s := &RoundState{
		rules:         rules,
		board:         NewScoreBoard(rules.InitialPoints, 0),
		searcher:      DefaultSearcher(),
		wall:          w,
		riichiPending: -1,
	}
	s.deal()
	require.NoError(t, s.drawFor(0, false))
	require.NoError(t, s.checkInvariants())
	return s
}

func findType(legal []Action, typ ActionType) (Action, bool) {
	for _, a := range legal {
		if a.Type == typ {
			return a, true
		}
	}
	return Action{}, false
}

func hasType(legal []Action, typ ActionType) bool {
	_, ok := findType(legal, typ)
	return ok
}

// randomActions 每个需要行动的座位随机选一个合法动作
func randomActions(t *testing.T, s *RoundState, rng *rand.Rand) map[int]Action {
	t.Helper()
	actions := map[int]Action{}
	for _, seat := range s.Stage().ActingSeats() {
		legal := s.LegalActions(seat)
		require.NotEmpty(t, legal, "座位 %d 在 %s 没有合法动作", seat, s.Stage())
		actions[seat] = legal[rng.Intn(len(legal))]
	}
	return actions
}

func tileKind(s string) TileType { return MustParseTiles(s)[0].Type }

// discardKind 打出一张指定种类的牌
func discardKind(t *testing.T, s *RoundState, seat int, tt TileType) {
	t.Helper()
	for _, a := range s.LegalActions(seat) {
		if a.Type == ActionDiscard && a.Tile.Type == tt {
			require.NoError(t, s.Apply(seat, a))
			return
		}
	}
	t.Fatalf("座位 %d 不能打出 %s: %v", seat, tt, s.LegalActions(seat))
}

// findKind 按动作类型与牌种查找合法动作
func findKind(t *testing.T, legal []Action, typ ActionType, tt TileType) Action {
	t.Helper()
	for _, a := range legal {
		if a.Type == typ && a.Tile.Type == tt {
			return a
		}
	}
	t.Fatalf("合法动作中没有 %s(%s): %v", typ, tt, legal)
	return Action{}
}
