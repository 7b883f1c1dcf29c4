package mahjong

import "math"

// WinSituation 一次和了的全部条件，Concealed 不含和了牌
type WinSituation struct {
	Concealed         []Tile
	Melds             []Meld
	WinTile           Tile
	Tsumo             bool
	SeatWind          Wind
	RoundWind         Wind
	Riichi            bool
	DoubleRiichi      bool
	Ippatsu           bool
	Haitei            bool
	Houtei            bool
	Rinshan           bool
	Chankan           bool
	Tenhou            bool
	Chiihou           bool
	OpenTanyao        bool
	DoraIndicators    []Tile
	UraDoraIndicators []Tile
}

type YakuHan struct {
	Yaku Yaku `json:"yaku" bson:"yaku"`
	Han  int  `json:"han" bson:"han"` // 役满时为倍数
}

// Score 和了打点
type Score struct {
	Yaku    []YakuHan `json:"yaku" bson:"yaku"`
	Han     int       `json:"han" bson:"han"` // 含宝牌
	Fu      int       `json:"fu" bson:"fu"`
	Yakuman int       `json:"yakuman" bson:"yakuman"`
	Basic   int       `json:"basic" bson:"basic"` // 基本点
}

// LimitName 满贯以上的名称
func (s Score) LimitName() string {
	switch {
	case s.Yakuman > 0:
		return "Yakuman"
	case s.Han >= 13:
		return "Kazoe Yakuman"
	case s.Han >= 11:
		return "Sanbaiman"
	case s.Han >= 8:
		return "Baiman"
	case s.Han >= 6:
		return "Haneman"
	case s.Basic >= 2000:
		return "Mangan"
	default:
		return ""
	}
}

// EvaluateWin 判定和了并计算最高打点；不成和或无役时返回 false
func EvaluateWin(sit WinSituation) (Score, bool) {
	concealed14 := countsOf(sit.Concealed)
	concealed14[sit.WinTile.Type]++
	if !isAgariWithMelds(concealed14, len(sit.Melds)) {
		return Score{}, false
	}

	all := concealed14
	for _, m := range sit.Melds {
		for _, t := range m.Tiles {
			all[t.Type]++
		}
	}

	best := Score{}
	found := false
	for _, shape := range agariShapes(concealed14, sit.Melds, sit.WinTile.Type, sit.Tsumo) {
		ctx := &YakuContext{
			shape:     shape,
			all:       all,
			menzen:    isMenzen(sit.Melds),
			tsumo:     sit.Tsumo,
			winTile:   sit.WinTile,
			seatWind:  sit.SeatWind.WindTile(),
			roundWind: sit.RoundWind.WindTile(),
			sit:       &sit,
		}
		score, ok := scoreShape(ctx)
		if ok && (!found || better(score, best)) {
			best = score
			found = true
		}
	}
	return best, found
}

func isAgariWithMelds(h Hand34, melds int) bool {
	if melds > 0 {
		return IsAgariNormal(h, melds)
	}
	return IsAgariNormal(h, 0) || IsAgariChiitoi(h) || IsAgariKokushi(h)
}

func isMenzen(melds []Meld) bool {
	for _, m := range melds {
		if m.IsOpen() {
			return false
		}
	}
	return true
}

func better(a, b Score) bool {
	if a.Basic != b.Basic {
		return a.Basic > b.Basic
	}
	if a.Han != b.Han {
		return a.Han > b.Han
	}
	return a.Fu > b.Fu
}

func scoreShape(ctx *YakuContext) (Score, bool) {
	var score Score
	for _, checker := range RiichiMahjong4pYakumanRegistry {
		if _, mult := checker.Check(ctx); mult > 0 {
			score.Yaku = append(score.Yaku, YakuHan{Yaku: checker.ID(), Han: mult})
			score.Yakuman += mult
		}
	}
	if score.Yakuman > 0 {
		score.Basic = basicPoints(0, 0, score.Yakuman)
		return score, true
	}

	for _, checker := range RiichiMahjong4pYakuRegistry {
		if h, _ := checker.Check(ctx); h > 0 {
			score.Yaku = append(score.Yaku, YakuHan{Yaku: checker.ID(), Han: h})
			score.Han += h
		}
	}
	if score.Han == 0 {
		return Score{}, false
	}

	if n := countDora(ctx.all, ctx.sit.DoraIndicators); n > 0 {
		score.Yaku = append(score.Yaku, YakuHan{Yaku: YakuDora, Han: n})
		score.Han += n
	}
	if ctx.sit.Riichi {
		if n := countDora(ctx.all, ctx.sit.UraDoraIndicators); n > 0 {
			score.Yaku = append(score.Yaku, YakuHan{Yaku: YakuUraDora, Han: n})
			score.Han += n
		}
	}
	if n := countAka(ctx.sit); n > 0 {
		score.Yaku = append(score.Yaku, YakuHan{Yaku: YakuAkaDora, Han: n})
		score.Han += n
	}

	score.Fu = calculateFu(ctx)
	score.Basic = basicPoints(score.Han, score.Fu, 0)
	return score, true
}

func countDora(all Hand34, indicators []Tile) int {
	n := 0
	for _, ind := range indicators {
		n += int(all[ind.Type.DoraOf()])
	}
	return n
}

func countAka(sit *WinSituation) int {
	n := 0
	if sit.WinTile.Red {
		n++
	}
	for _, t := range sit.Concealed {
		if t.Red {
			n++
		}
	}
	for _, m := range sit.Melds {
		for _, t := range m.Tiles {
			if t.Red {
				n++
			}
		}
	}
	return n
}

// calculateFu 计算符数
func calculateFu(ctx *YakuContext) int {
	if ctx.shape.chiitoi {
		return 25
	}
	if isPinfu(ctx) {
		if ctx.tsumo {
			return 20 // 平和自摸固定20符
		}
		return 30 // 平和荣和固定30符
	}

	fu := 20 // 副底
	if ctx.menzen && !ctx.tsumo {
		fu += 10 // 门前荣和
	}
	if ctx.tsumo {
		fu += 2
	}

	// 面子符数
	for _, b := range ctx.shape.blocks {
		if b.kind == blockSequence {
			continue
		}
		f := 2
		if b.tile.IsYaochu() {
			f *= 2
		}
		if !b.open {
			f *= 2
		}
		if b.kind == blockKan {
			f *= 4
		}
		fu += f
	}

	// 雀头符数，连风牌 4 符
	pair := ctx.shape.pair
	if pair.IsDragon() {
		fu += 2
	}
	if pair == ctx.seatWind {
		fu += 2
	}
	if pair == ctx.roundWind {
		fu += 2
	}

	// 听牌形式符数
	switch ctx.shape.wait {
	case waitKanchan, waitPenchan, waitTanki:
		fu += 2
	}

	fu = ((fu + 9) / 10) * 10
	if fu == 20 && !ctx.menzen {
		fu = 30 // 副露平和形
	}
	return fu
}

// basicPoints 基本点 = 符数 × 2^(2+番数)，满贯以上取固定值
func basicPoints(han, fu, yakumanMult int) int {
	if yakumanMult > 0 {
		return 8000 * yakumanMult
	}
	switch {
	case han >= 13:
		return 8000 // 累计役满
	case han >= 11:
		return 6000 // 三倍满
	case han >= 8:
		return 4000 // 倍满
	case han >= 6:
		return 3000 // 跳满
	case han >= 5:
		return 2000 // 满贯
	}
	base := fu * (1 << (2 + han))
	if base > 2000 {
		base = 2000
	}
	return base
}

func roundUpTo100(x int) int {
	return int(math.Ceil(float64(x)/100.0)) * 100
}

// RonPoints 荣和时放铳者支付的点数（不含本场）
func RonPoints(basic int, dealer bool) int {
	if dealer {
		return roundUpTo100(basic * 6)
	}
	return roundUpTo100(basic * 4)
}

// TsumoPoints 自摸时庄家、闲家各自支付的点数（不含本场）；庄家自摸时两者相同
func TsumoPoints(basic int, dealer bool) (fromDealer, fromOther int) {
	if dealer {
		p := roundUpTo100(basic * 2)
		return p, p
	}
	return roundUpTo100(basic * 2), roundUpTo100(basic)
}
