package mahjong

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playGame(t *testing.T, rules Rules, seeds SeedSource, firstDealer int, rng *rand.Rand) *GameResult {
	t.Helper()
	g, err := NewGameState(rules, seeds, firstDealer)
	require.NoError(t, err)
	for steps := 0; !g.Done(); steps++ {
		require.Less(t, steps, 100000)
		require.NoError(t, g.Step(randomActions(t, g.Round(), rng)))
	}
	require.ErrorIs(t, g.Step(map[int]Action{}), ErrGameOver)
	return g.Result()
}

func TestGameStateSequencing(t *testing.T) {
	rules := DefaultRules()
	for seed := int64(0); seed < 10; seed++ {
		firstDealer := int(seed % NumPlayers)
		res := playGame(t, rules, NewSeedSequence(uint64(seed)), firstDealer, rand.New(rand.NewSource(seed)))

		require.NotEmpty(t, res.Rounds)
		assert.Len(t, res.Seeds, len(res.Rounds))
		assert.Equal(t, firstDealer, res.Rounds[0].Board.Dealer)

		sum := 0
		for _, p := range res.Points {
			sum += p
		}
		assert.Equal(t, NumPlayers*rules.InitialPoints, sum, "剩余立直棒归第一名后总点数不变")

		for i := 1; i < len(res.Rounds); i++ {
			prev, cur := res.Rounds[i-1], res.Rounds[i]
			assert.Equal(t, prev.Seed, res.Seeds[i-1])
			switch {
			case prev.Renchan:
				assert.Equal(t, prev.Board.Dealer, cur.Board.Dealer)
				assert.Equal(t, prev.Board.Round, cur.Board.Round)
			default:
				assert.Equal(t, NextSeat(prev.Board.Dealer), cur.Board.Dealer)
				assert.Equal(t, prev.Board.Round+1, cur.Board.Round)
			}
			if prev.Renchan || len(prev.Wins) == 0 {
				assert.Equal(t, prev.Board.Honba+1, cur.Board.Honba)
			} else {
				assert.Zero(t, cur.Board.Honba)
			}
		}

		for place, seat := range res.Rankings {
			assert.Equal(t, place+1, res.Ranks[seat])
			if place > 0 {
				assert.GreaterOrEqual(t, res.Points[res.Rankings[place-1]], res.Points[seat])
			}
		}
		last := res.Rounds[len(res.Rounds)-1].Board
		assert.LessOrEqual(t, last.Round, rules.MaxRounds-1)
	}
}

func TestGameStateReplayWithFixedSeeds(t *testing.T) {
	rules := DefaultRules()
	rules.Rounds, rules.MaxRounds = 4, 8
	first := playGame(t, rules, NewSeedSequence(31337), 2, rand.New(rand.NewSource(4)))
	again := playGame(t, rules, NewFixedSeeds(first.Seeds...), 2, rand.New(rand.NewSource(4)))

	assert.Equal(t, first.Seeds, again.Seeds)
	assert.Equal(t, first.Points, again.Points)
	assert.Equal(t, first.Rankings, again.Rankings)
	require.Len(t, again.Rounds, len(first.Rounds))
	for i := range first.Rounds {
		assert.Equal(t, first.Rounds[i].Events, again.Rounds[i].Events)
	}
	assert.NotEqual(t, first.ID, again.ID)
}

func TestGameStateRejectsBadInput(t *testing.T) {
	_, err := NewGameState(DefaultRules(), nil, 0)
	assert.ErrorIs(t, err, ErrMalformedInput)
	_, err = NewGameState(DefaultRules(), NewSeedSequence(1), 4)
	assert.ErrorIs(t, err, ErrMalformedInput)

	bad := DefaultRules()
	bad.Rounds = 5
	_, err = NewGameState(bad, NewSeedSequence(1), 0)
	assert.Error(t, err)
}

func TestGameStateIllegalStepKeepsRound(t *testing.T) {
	g, err := NewGameState(DefaultRules(), NewSeedSequence(6), 0)
	require.NoError(t, err)
	round := g.Round()
	assert.ErrorIs(t, g.Step(map[int]Action{1: NoAction()}), ErrIllegalAction)
	assert.Same(t, round, g.Round())
	assert.False(t, g.Done())
	assert.Nil(t, g.Result())
}

func TestScoreBoardRankingTieBreak(t *testing.T) {
	b := ScoreBoard{Points: [NumPlayers]int{30000, 30000, 20000, 20000}}
	assert.Equal(t, [NumPlayers]int{0, 1, 2, 3}, b.Ranking(0))
	assert.Equal(t, [NumPlayers]int{1, 0, 2, 3}, b.Ranking(1))
	assert.Equal(t, [NumPlayers]int{0, 1, 2, 3}, b.Ranking(2), "同分时离起家近的在前")
	assert.Equal(t, [NumPlayers]int{0, 1, 3, 2}, b.Ranking(3))
	assert.Equal(t, WindSouth, ScoreBoard{Round: 5}.RoundWind())
	assert.Equal(t, WindWest, ScoreBoard{Dealer: 1}.SeatWind(3))
}
