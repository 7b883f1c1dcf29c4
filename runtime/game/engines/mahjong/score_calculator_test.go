package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yakuOf(s Score) []Yaku {
	out := make([]Yaku, 0, len(s.Yaku))
	for _, y := range s.Yaku {
		out = append(out, y.Yaku)
	}
	return out
}

func TestPaymentTables(t *testing.T) {
	cases := []struct {
		han, fu, yakuman int
		basic            int
		ron, dealerRon   int
	}{
		{1, 30, 0, 240, 1000, 1500},
		{3, 30, 0, 960, 3900, 5800},
		{4, 40, 0, 2000, 8000, 12000},
		{5, 30, 0, 2000, 8000, 12000},
		{6, 30, 0, 3000, 12000, 18000},
		{8, 30, 0, 4000, 16000, 24000},
		{11, 30, 0, 6000, 24000, 36000},
		{13, 30, 0, 8000, 32000, 48000},
		{0, 0, 2, 16000, 64000, 96000},
	}
	for _, c := range cases {
		basic := basicPoints(c.han, c.fu, c.yakuman)
		assert.Equal(t, c.basic, basic, "%d 番 %d 符", c.han, c.fu)
		assert.Equal(t, c.ron, RonPoints(basic, false))
		assert.Equal(t, c.dealerRon, RonPoints(basic, true))
	}

	fromDealer, fromOther := TsumoPoints(1280, false)
	assert.Equal(t, 2600, fromDealer)
	assert.Equal(t, 1300, fromOther)
	fromDealer, fromOther = TsumoPoints(1280, true)
	assert.Equal(t, 2600, fromDealer)
	assert.Equal(t, 2600, fromOther)
}

func TestEvaluateWinPinfuTsumo(t *testing.T) {
	score, ok := EvaluateWin(WinSituation{
		Concealed:         MustParseTiles("234m567m345p67s22p"),
		WinTile:           MustParseTiles("8s")[0],
		Tsumo:             true,
		Riichi:            true,
		SeatWind:          WindSouth,
		RoundWind:         WindEast,
		DoraIndicators:    MustParseTiles("4z"),
		UraDoraIndicators: MustParseTiles("4z"),
	})
	require.True(t, ok)
	assert.ElementsMatch(t, []Yaku{YakuRiichi, YakuTsumo, YakuPinfu, YakuTanyao}, yakuOf(score))
	assert.Equal(t, 4, score.Han)
	assert.Equal(t, 20, score.Fu)
	assert.Equal(t, 1280, score.Basic)
	assert.Equal(t, "", score.LimitName())
}

func TestEvaluateWinTankiFu(t *testing.T) {
	score, ok := EvaluateWin(WinSituation{
		Concealed: MustParseTiles("234m567m345p678s2p"),
		WinTile:   MustParseTiles("2p")[0],
		Riichi:    true,
		SeatWind:  WindWest,
		RoundWind: WindEast,
	})
	require.True(t, ok)
	assert.ElementsMatch(t, []Yaku{YakuRiichi, YakuTanyao}, yakuOf(score))
	// 20 + 门前荣和 10 + 单骑 2，进位到 40
	assert.Equal(t, 40, score.Fu)
	assert.Equal(t, 2600, RonPoints(score.Basic, false))
}

func TestEvaluateWinDaisangen(t *testing.T) {
	score, ok := EvaluateWin(WinSituation{
		Concealed: MustParseTiles("555666777z123m9p"),
		WinTile:   MustParseTiles("9p")[0],
		SeatWind:  WindNorth,
		RoundWind: WindEast,
	})
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuDaisangen}, yakuOf(score))
	assert.Equal(t, 1, score.Yakuman)
	assert.Equal(t, 8000, score.Basic)
	assert.Equal(t, 32000, RonPoints(score.Basic, false))
	assert.Equal(t, "Yakuman", score.LimitName())
}

func TestEvaluateWinChiitoi(t *testing.T) {
	score, ok := EvaluateWin(WinSituation{
		Concealed: MustParseTiles("1133m5577p22s44z6z"),
		WinTile:   MustParseTiles("6z")[0],
		SeatWind:  WindSouth,
		RoundWind: WindEast,
	})
	require.True(t, ok)
	assert.Equal(t, []Yaku{YakuChiitoi}, yakuOf(score))
	assert.Equal(t, 2, score.Han)
	assert.Equal(t, 25, score.Fu)
	assert.Equal(t, 400, score.Basic)
	assert.Equal(t, 1600, RonPoints(score.Basic, false))
	assert.Equal(t, 2400, RonPoints(score.Basic, true))
}

func TestEvaluateWinRejects(t *testing.T) {
	// 东风雀头使平和不成立，又没有其他役
	_, ok := EvaluateWin(WinSituation{
		Concealed: MustParseTiles("123m456m789p45s11z"),
		WinTile:   MustParseTiles("6s")[0],
		SeatWind:  WindSouth,
		RoundWind: WindEast,
	})
	assert.False(t, ok, "无役")

	_, ok = EvaluateWin(WinSituation{
		Concealed: MustParseTiles("123m456m789p45s11z"),
		WinTile:   MustParseTiles("9s")[0],
		Riichi:    true,
		SeatWind:  WindSouth,
		RoundWind: WindEast,
	})
	assert.False(t, ok, "不成和")
}

func TestEvaluateWinDora(t *testing.T) {
	score, ok := EvaluateWin(WinSituation{
		Concealed:         MustParseTiles("234m567m345p67s22p"),
		WinTile:           MustParseTiles("8s")[0],
		Tsumo:             true,
		Riichi:            true,
		SeatWind:          WindSouth,
		RoundWind:         WindEast,
		DoraIndicators:    MustParseTiles("1p"),
		UraDoraIndicators: MustParseTiles("1m"),
	})
	require.True(t, ok)
	// 宝牌 2p 两张，里宝牌 2m 一张
	assert.Contains(t, score.Yaku, YakuHan{Yaku: YakuDora, Han: 2})
	assert.Contains(t, score.Yaku, YakuHan{Yaku: YakuUraDora, Han: 1})
	assert.Equal(t, 7, score.Han)
	assert.Equal(t, 3000, score.Basic)
	assert.Equal(t, "Haneman", score.LimitName())
}
