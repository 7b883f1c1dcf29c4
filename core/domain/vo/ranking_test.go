package vo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRankingByDan(t *testing.T) {
	cases := []struct {
		dan  float64
		want RankingType
	}{
		{-2, RankingNovice},
		{math.NaN(), RankingNovice},
		{1, RankingGuard},
		{2.99, RankingGuard},
		{3, RankingHero},
		{5.5, RankingSaint},
		{7, RankingSky},
		{math.Inf(1), RankingSky},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, GetRankingByDan(c.dan), "%v", c.dan)
	}
	assert.Equal(t, "雀圣", RankingSaint.GetDisplayName())
	assert.Equal(t, "sky", RankingSky.String())
	assert.Equal(t, "unknown", RankingType(9).String())
}
