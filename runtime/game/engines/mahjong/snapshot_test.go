package mahjong

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreContinuesIdentically(t *testing.T) {
	for seed := uint64(100); seed < 120; seed++ {
		s, err := NewRoundState(DefaultRules(), NewScoreBoard(25000, 1), seed)
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(int64(seed)))
		for i := 0; i < 30 && !s.Done(); i++ {
			require.NoError(t, s.Step(randomActions(t, s, rng)))
		}

		raw, err := json.Marshal(s.Snapshot())
		require.NoError(t, err)
		var snap RoundSnapshot
		require.NoError(t, json.Unmarshal(raw, &snap))
		restored, err := RestoreRoundState(&snap)
		require.NoError(t, err, "seed=%d", seed)

		again, err := json.Marshal(restored.Snapshot())
		require.NoError(t, err)
		assert.JSONEq(t, string(raw), string(again))

		// 同样的随机动作序列，两边结果一致
		a, b := rand.New(rand.NewSource(1)), rand.New(rand.NewSource(1))
		for !s.Done() {
			require.NoError(t, s.Step(randomActions(t, s, a)))
			require.NoError(t, restored.Step(randomActions(t, restored, b)))
			require.Equal(t, s.Stage(), restored.Stage())
		}
		assert.Equal(t, s.Result(), restored.Result())
	}
}

func TestRestoreRejectsInconsistentSnapshot(t *testing.T) {
	s, err := NewRoundState(testRules(), NewScoreBoard(25000, 0), 8)
	require.NoError(t, err)

	_, err = RestoreRoundState(nil)
	assert.ErrorIs(t, err, ErrMalformedInput)

	snap := s.Snapshot()
	snap.Hands[1].Tiles = snap.Hands[1].Tiles[1:]
	_, err = RestoreRoundState(snap)
	assert.ErrorIs(t, err, ErrMalformedInput, "少一张牌")

	snap = s.Snapshot()
	snap.Hands[2].Tiles[0] = snap.Hands[3].Tiles[0]
	_, err = RestoreRoundState(snap)
	assert.ErrorIs(t, err, ErrMalformedInput, "重复的牌")

	snap = s.Snapshot()
	snap.Hands[0].Drawn = snap.Hands[1].Tiles[0]
	_, err = RestoreRoundState(snap)
	assert.ErrorIs(t, err, ErrMalformedInput, "摸到的牌不在手中")

	snap = s.Snapshot()
	snap.Stage.Kind = StageRoundEnd
	_, err = RestoreRoundState(snap)
	assert.ErrorIs(t, err, ErrMalformedInput, "缺少结算")

	snap = s.Snapshot()
	snap.Board.Dealer = 4
	_, err = RestoreRoundState(snap)
	assert.ErrorIs(t, err, ErrMalformedInput)

	snap = s.Snapshot()
	snap.Hands[3].Tiles[0] = TileLimit
	_, err = RestoreRoundState(snap)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s, err := NewRoundState(testRules(), NewScoreBoard(25000, 0), 3)
	require.NoError(t, err)
	snap := s.Snapshot()
	snap.Hands[0].Tiles[0] = 0
	snap.Board.Points[0] = 1
	assert.Equal(t, 25000, s.Board().Points[0])
	assert.NoError(t, s.checkInvariants())
}
