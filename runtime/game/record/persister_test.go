package record

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mjx/core/domain/entity"
	"mjx/core/domain/repository"
	"mjx/runtime/game/agent"
	"mjx/runtime/game/engines/mahjong"
)

type fakeRepo struct {
	mu      sync.Mutex
	games   []*entity.GameRecord
	rounds  []*entity.RoundRecord
	failErr error
}

func (f *fakeRepo) SaveGameRecord(ctx context.Context, record *entity.GameRecord) error {
	if f.failErr != nil {
		return f.failErr
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games = append(f.games, record)
	return nil
}

func (f *fakeRepo) FindGameRecord(_ context.Context, gameID string) (*entity.GameRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.GameID == gameID {
			return g, nil
		}
	}
	return nil, repository.ErrGameRecordNotFound
}

func (f *fakeRepo) SaveRoundRecords(_ context.Context, rounds []*entity.RoundRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, rounds...)
	return nil
}

func (f *fakeRepo) FindRoundRecords(_ context.Context, id primitive.ObjectID) ([]*entity.RoundRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.RoundRecord
	for _, r := range f.rounds {
		if r.GameRecordID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func playGame(t *testing.T, seed uint64) *mahjong.GameResult {
	t.Helper()
	rules := mahjong.DefaultRules()
	rules.Rounds, rules.MaxRounds = 4, 8
	g, err := mahjong.NewGameState(rules, mahjong.NewSeedSequence(seed), 0)
	require.NoError(t, err)
	a := agent.TsumogiriAgent{}
	for steps := 0; !g.Done(); steps++ {
		require.Less(t, steps, 100000)
		actions := map[int]mahjong.Action{}
		for _, seat := range g.Round().Stage().ActingSeats() {
			actions[seat] = a.Act(g.Round().Observe(seat))
		}
		require.NoError(t, g.Step(actions))
	}
	return g.Result()
}

var names = [mahjong.NumPlayers]string{"tsumogiri", "tsumogiri", "random", "rule"}

func TestBuildRecords(t *testing.T) {
	res := playGame(t, 7)
	game, rounds := BuildRecords(res, names)

	assert.Equal(t, res.ID, game.GameID)
	assert.Equal(t, "completed", game.Status)
	assert.Equal(t, len(res.Rounds), game.RoundCount)
	require.Len(t, game.Seeds, len(res.Seeds))
	for i, s := range res.Seeds {
		assert.Equal(t, s, uint64(game.Seeds[i]))
	}
	require.Len(t, game.FinalResult.Rankings, mahjong.NumPlayers)
	for i, r := range game.FinalResult.Rankings {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, res.Rankings[i], r.SeatIndex)
		assert.Equal(t, names[r.SeatIndex], r.AgentName)
		assert.Equal(t, res.Points[r.SeatIndex], r.Points)
	}

	require.Len(t, rounds, len(res.Rounds))
	for i, rr := range rounds {
		src := res.Rounds[i]
		assert.Equal(t, game.ID, rr.GameRecordID)
		assert.Equal(t, i+1, rr.RoundNumber)
		assert.Equal(t, src.Board.Dealer, rr.DealerIndex)
		assert.Equal(t, src.Seed, uint64(rr.Seed))
		assert.Equal(t, src.Kind.String(), rr.RoundResult.EndType)
		assert.Equal(t, src.Deltas, rr.RoundResult.Delta)
		assert.Len(t, rr.RoundResult.Claims, len(src.Wins))

		require.NotEmpty(t, rr.Events)
		assert.Equal(t, entity.EventTypeRoundStart, rr.Events[0].EventType)
		assert.Equal(t, entity.EventTypeRoundEnd, rr.Events[len(rr.Events)-1].EventType)
		for j, e := range rr.Events {
			assert.Equal(t, j, e.Sequence)
		}
		if i+1 < len(rounds) {
			assert.Equal(t, res.Rounds[i+1].Board.Dealer, rr.RoundResult.NextDealer)
		} else {
			assert.Equal(t, -1, rr.RoundResult.NextDealer)
		}
	}
}

func TestPersisterConsume(t *testing.T) {
	repo := &fakeRepo{}
	p := NewPersister(repo, names, time.Second)
	res := playGame(t, 11)

	require.NoError(t, p.Consume(context.Background(), res))

	game, err := repo.FindGameRecord(context.Background(), res.ID)
	require.NoError(t, err)
	rounds, err := repo.FindRoundRecords(context.Background(), game.ID)
	require.NoError(t, err)
	assert.Len(t, rounds, len(res.Rounds))

	_, err = repo.FindGameRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrGameRecordNotFound)
}

func TestPersisterConsumeError(t *testing.T) {
	repo := &fakeRepo{failErr: repository.ErrMongodb}
	p := NewPersister(repo, names, 0)

	err := p.Consume(context.Background(), playGame(t, 3))
	assert.ErrorIs(t, err, repository.ErrMongodb)
	assert.Empty(t, repo.rounds)

	assert.Error(t, p.Consume(context.Background(), nil))
}
