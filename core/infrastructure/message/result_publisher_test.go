package message

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mjx/core/domain/repository"
	"mjx/runtime/game/engines/mahjong"
)

type fakePublisher struct {
	subject string
	data    [][]byte
	err     error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subject = subject
	f.data = append(f.data, data)
	return nil
}

func TestResultPublisherConsume(t *testing.T) {
	pub := &fakePublisher{}
	agents := [4]string{"rule", "rule", "random", "random"}
	p := NewResultPublisher(pub, "mjx.game.result", agents)

	res := &mahjong.GameResult{
		ID:       "game-1",
		Rankings: [4]int{2, 0, 1, 3},
		Ranks:    [4]int{2, 3, 1, 4},
		Points:   [4]int{30000, 20000, 45000, 5000},
		Rounds: []mahjong.RoundResult{{
			Kind:   mahjong.RoundEndRon,
			Board:  mahjong.ScoreBoard{Dealer: 1, Honba: 2},
			Deltas: [4]int{0, -8000, 8000, 0},
			Seed:   ^uint64(0),
		}},
	}
	require.NoError(t, p.Consume(context.Background(), res))
	require.Len(t, pub.data, 1)
	assert.Equal(t, "mjx.game.result", pub.subject)

	var msg GameResultMessage
	require.NoError(t, json.Unmarshal(pub.data[0], &msg))
	assert.Equal(t, *NewGameResultMessage(res, agents), msg)
	assert.Equal(t, "RON", msg.Rounds[0].Kind)
	assert.Equal(t, ^uint64(0), msg.Rounds[0].Seed)
}

func TestResultPublisherErrors(t *testing.T) {
	pub := &fakePublisher{err: ErrNotConnected}
	p := NewResultPublisher(pub, "s", [4]string{})

	err := p.Consume(context.Background(), &mahjong.GameResult{ID: "g"})
	assert.ErrorIs(t, err, repository.ErrPublish)
	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.Error(t, p.Consume(context.Background(), nil))

	assert.ErrorIs(t, NewNatsClient().Publish("s", nil), ErrNotConnected)
	assert.NoError(t, NewNatsClient().Close())
}
