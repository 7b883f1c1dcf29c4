package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mjx/common/config"
	"mjx/runtime/game/engines/mahjong"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	conf, err := config.Load("")
	require.NoError(t, err)
	return conf
}

func TestRulesFromConf(t *testing.T) {
	conf := testConfig(t)
	assert.Equal(t, mahjong.DefaultRules(), RulesFromConf(conf.Rules))
}

func TestRunnerOptions(t *testing.T) {
	conf := testConfig(t)
	conf.Runner.Agents = []string{"rule", "random", "tsumogiri", "RULE"}
	conf.Runner.ProgressInterval = 3

	opts, err := RunnerOptions(conf)
	require.NoError(t, err)
	assert.Equal(t, [4]string{"rule", "random", "tsumogiri", "RULE"}, opts.AgentNames)
	for _, f := range opts.Agents {
		assert.NotNil(t, f)
	}
	assert.Equal(t, 3.0, opts.ProgressInterval.Seconds())

	conf.Runner.Agents = []string{"rule", "random", "nobody", "rule"}
	_, err = RunnerOptions(conf)
	assert.Error(t, err)

	conf.Runner.Agents = []string{"rule"}
	_, err = RunnerOptions(conf)
	assert.Error(t, err)
}

func TestRunWithoutSinks(t *testing.T) {
	conf := testConfig(t)
	conf.Rules.Rounds, conf.Rules.MaxRounds = 4, 8
	conf.Runner.Games = 3
	conf.Runner.Parallel = 2
	conf.Runner.Seed = 42
	conf.Runner.Agents = []string{"tsumogiri", "tsumogiri", "random", "random"}

	summary, err := Run(context.Background(), conf)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Games)
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []string{"rule", "random"}, uniq([]string{"rule", "random", "rule", "random"}))
}
