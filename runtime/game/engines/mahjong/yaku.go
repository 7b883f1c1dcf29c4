package mahjong

// Yaku 役种（和牌方式）
type Yaku int

// 役种常量定义
const (
	// 基本役
	YakuRiichi       Yaku = iota // 立直
	YakuDoubleRiichi             // 两立直
	YakuIppatsu                  // 一发
	YakuTsumo                    // 门前清自摸和
	YakuHaitei                   // 海底摸月
	YakuHoutei                   // 河底捞鱼
	YakuRinshan                  // 岭上开花
	YakuChankan                  // 抢杠

	// 平和系
	YakuPinfu     // 平和：4顺子+非役牌雀头，两面听牌
	YakuIppeiko   // 一杯口：同种花色、同种顺子有两组
	YakuRyanpeiko // 二杯口：手牌中有两个不同的一杯口

	// 役牌系
	YakuHaku      // 白
	YakuHatsu     // 发
	YakuChun      // 中
	YakuSeatWind  // 自风
	YakuRoundWind // 场风

	// 断幺系
	YakuTanyao // 断幺九

	// 顺子系
	YakuSanshoku // 三色同顺
	YakuIttsu    // 一气通贯

	// 带幺系
	YakuChanta  // 混全带幺九
	YakuJunchan // 纯全带幺九

	// 老头系
	YakuHonroto // 混老头

	// 清一色系
	YakuHonitsu  // 混一色
	YakuChinitsu // 清一色

	// 刻子系
	YakuToitoi          // 对对和
	YakuSananko         // 三暗刻
	YakuSankantsu       // 三杠子
	YakuSanshokuDoukou  // 三色同刻
	YakuShousangen      // 小三元

	// 特殊型
	YakuChiitoi // 七对子

	// 役满役种
	YakuKokushi       // 国士无双
	YakuKokushi13     // 国士十三面（双倍）
	YakuSuuankou      // 四暗刻
	YakuSuuankouTanki // 四暗刻单骑（双倍）
	YakuDaisangen     // 大三元
	YakuShousushi     // 小四喜
	YakuDaisushi      // 大四喜（双倍）
	YakuTsuuiisou     // 字一色
	YakuRyuuiisou     // 绿一色
	YakuChinroto      // 清老头
	YakuChuuren       // 九莲宝灯
	YakuJunseiChuuren // 纯正九莲宝灯（双倍）
	YakuSuukantsu     // 四杠子
	YakuTenhou        // 天和
	YakuChiihou       // 地和

	// 宝牌不是役，和了时单独计番
	YakuDora
	YakuUraDora
	YakuAkaDora
)

var yakuNames = map[Yaku]string{
	YakuRiichi: "Riichi", YakuDoubleRiichi: "Double Riichi", YakuIppatsu: "Ippatsu",
	YakuTsumo: "Menzen Tsumo", YakuHaitei: "Haitei", YakuHoutei: "Houtei",
	YakuRinshan: "Rinshan Kaihou", YakuChankan: "Chankan", YakuPinfu: "Pinfu",
	YakuIppeiko: "Iipeikou", YakuRyanpeiko: "Ryanpeikou", YakuHaku: "Haku",
	YakuHatsu: "Hatsu", YakuChun: "Chun", YakuSeatWind: "Seat Wind",
	YakuRoundWind: "Round Wind", YakuTanyao: "Tanyao", YakuSanshoku: "Sanshoku Doujun",
	YakuIttsu: "Ittsu", YakuChanta: "Chanta", YakuJunchan: "Junchan",
	YakuHonroto: "Honroutou", YakuHonitsu: "Honitsu", YakuChinitsu: "Chinitsu",
	YakuToitoi: "Toitoi", YakuSananko: "Sanankou", YakuSankantsu: "Sankantsu",
	YakuSanshokuDoukou: "Sanshoku Doukou", YakuShousangen: "Shousangen",
	YakuChiitoi: "Chiitoitsu", YakuKokushi: "Kokushi Musou",
	YakuKokushi13: "Kokushi Musou 13-wait", YakuSuuankou: "Suuankou",
	YakuSuuankouTanki: "Suuankou Tanki", YakuDaisangen: "Daisangen",
	YakuShousushi: "Shousuushii", YakuDaisushi: "Daisuushii", YakuTsuuiisou: "Tsuuiisou",
	YakuRyuuiisou: "Ryuuiisou", YakuChinroto: "Chinroutou", YakuChuuren: "Chuuren Poutou",
	YakuJunseiChuuren: "Junsei Chuuren Poutou", YakuSuukantsu: "Suukantsu",
	YakuTenhou: "Tenhou", YakuChiihou: "Chiihou", YakuDora: "Dora",
	YakuUraDora: "Ura Dora", YakuAkaDora: "Aka Dora",
}

func (y Yaku) String() string {
	if name, ok := yakuNames[y]; ok {
		return name
	}
	return "Unknown"
}

// YakuContext 判役所需的全部信息
type YakuContext struct {
	shape     agariShape
	all       Hand34 // 手牌+副露+和了牌，杠按 4 张计
	menzen    bool
	tsumo     bool
	winTile   Tile
	seatWind  TileType
	roundWind TileType
	sit       *WinSituation
}

type YakuChecker interface {
	ID() Yaku
	Check(ctx *YakuContext) (int, int)
}

type yakuCheckerFunc struct {
	id    Yaku
	check func(ctx *YakuContext) (int, int)
}

func (f yakuCheckerFunc) ID() Yaku { return f.id }

func (f yakuCheckerFunc) Check(ctx *YakuContext) (int, int) { return f.check(ctx) }

func han(ok bool, closed, open int, ctx *YakuContext) (int, int) {
	if !ok {
		return 0, 0
	}
	if ctx.menzen {
		return closed, 0
	}
	return open, 0
}

func yakuman(ok bool, mult int) (int, int) {
	if !ok {
		return 0, 0
	}
	return 0, mult
}

// RiichiMahjong4pYakumanRegistry 役满，成立任意一个时普通役不再计算
var RiichiMahjong4pYakumanRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuKokushi13, check: func(ctx *YakuContext) (int, int) {
		return yakuman(ctx.shape.kokushi && ctx.all[ctx.winTile.Type] == 2, 2)
	}},
	yakuCheckerFunc{id: YakuKokushi, check: func(ctx *YakuContext) (int, int) {
		return yakuman(ctx.shape.kokushi && ctx.all[ctx.winTile.Type] == 1, 1)
	}},
	yakuCheckerFunc{id: YakuSuuankouTanki, check: func(ctx *YakuContext) (int, int) {
		return yakuman(concealedTriplets(ctx) == 4 && ctx.shape.wait == waitTanki, 2)
	}},
	yakuCheckerFunc{id: YakuSuuankou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(concealedTriplets(ctx) == 4 && ctx.shape.wait != waitTanki, 1)
	}},
	yakuCheckerFunc{id: YakuDaisangen, check: func(ctx *YakuContext) (int, int) {
		return yakuman(countTripletsIn(ctx, TileType.IsDragon) == 3, 1)
	}},
	yakuCheckerFunc{id: YakuDaisushi, check: func(ctx *YakuContext) (int, int) {
		return yakuman(countTripletsIn(ctx, TileType.IsWind) == 4, 2)
	}},
	yakuCheckerFunc{id: YakuShousushi, check: func(ctx *YakuContext) (int, int) {
		return yakuman(countTripletsIn(ctx, TileType.IsWind) == 3 && ctx.shape.pair.IsWind() && !ctx.shape.chiitoi, 1)
	}},
	yakuCheckerFunc{id: YakuTsuuiisou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(allTiles(ctx, TileType.IsHonor), 1)
	}},
	yakuCheckerFunc{id: YakuRyuuiisou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(allTiles(ctx, isGreen), 1)
	}},
	yakuCheckerFunc{id: YakuChinroto, check: func(ctx *YakuContext) (int, int) {
		return yakuman(allTiles(ctx, TileType.IsTerminal), 1)
	}},
	yakuCheckerFunc{id: YakuJunseiChuuren, check: func(ctx *YakuContext) (int, int) {
		return yakuman(chuurenKind(ctx) == 2, 2)
	}},
	yakuCheckerFunc{id: YakuChuuren, check: func(ctx *YakuContext) (int, int) {
		return yakuman(chuurenKind(ctx) == 1, 1)
	}},
	yakuCheckerFunc{id: YakuSuukantsu, check: func(ctx *YakuContext) (int, int) {
		return yakuman(countKans(ctx) == 4, 1)
	}},
	yakuCheckerFunc{id: YakuTenhou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(ctx.sit.Tenhou, 1)
	}},
	yakuCheckerFunc{id: YakuChiihou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(ctx.sit.Chiihou, 1)
	}},
}

var RiichiMahjong4pYakuRegistry = []YakuChecker{
	// 基本役
	yakuCheckerFunc{id: YakuRiichi, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.sit.Riichi && !ctx.sit.DoubleRiichi, 1, 0, ctx)
	}},
	yakuCheckerFunc{id: YakuDoubleRiichi, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.sit.DoubleRiichi, 2, 0, ctx)
	}},
	yakuCheckerFunc{id: YakuIppatsu, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.sit.Ippatsu, 1, 0, ctx)
	}},
	yakuCheckerFunc{id: YakuTsumo, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.tsumo, 1, 0, ctx)
	}},
	yakuCheckerFunc{id: YakuHaitei, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.sit.Haitei && ctx.tsumo && !ctx.sit.Rinshan, 1, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuHoutei, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.sit.Houtei && !ctx.tsumo, 1, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuRinshan, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.sit.Rinshan && ctx.tsumo, 1, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuChankan, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.sit.Chankan && !ctx.tsumo, 1, 1, ctx)
	}},

	// 平和系
	yakuCheckerFunc{id: YakuPinfu, check: func(ctx *YakuContext) (int, int) {
		return han(isPinfu(ctx), 1, 0, ctx)
	}},
	yakuCheckerFunc{id: YakuIppeiko, check: func(ctx *YakuContext) (int, int) {
		return han(peikouCount(ctx) == 1, 1, 0, ctx)
	}},
	yakuCheckerFunc{id: YakuRyanpeiko, check: func(ctx *YakuContext) (int, int) {
		return han(peikouCount(ctx) == 2, 3, 0, ctx)
	}},

	// 役牌系
	yakuCheckerFunc{id: YakuHaku, check: func(ctx *YakuContext) (int, int) {
		return han(hasTriplet(ctx, White), 1, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuHatsu, check: func(ctx *YakuContext) (int, int) {
		return han(hasTriplet(ctx, Green), 1, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuChun, check: func(ctx *YakuContext) (int, int) {
		return han(hasTriplet(ctx, Red), 1, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuSeatWind, check: func(ctx *YakuContext) (int, int) {
		return han(hasTriplet(ctx, ctx.seatWind), 1, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuRoundWind, check: func(ctx *YakuContext) (int, int) {
		return han(hasTriplet(ctx, ctx.roundWind), 1, 1, ctx)
	}},

	// 断幺系
	yakuCheckerFunc{id: YakuTanyao, check: func(ctx *YakuContext) (int, int) {
		ok := allTiles(ctx, func(t TileType) bool { return !t.IsYaochu() })
		open := 0
		if ctx.sit.OpenTanyao {
			open = 1
		}
		return han(ok, 1, open, ctx)
	}},

	// 顺子系
	yakuCheckerFunc{id: YakuSanshoku, check: func(ctx *YakuContext) (int, int) {
		return han(hasSanshoku(ctx, blockSequence), 2, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuIttsu, check: func(ctx *YakuContext) (int, int) {
		return han(hasIttsu(ctx), 2, 1, ctx)
	}},

	// 带幺系
	yakuCheckerFunc{id: YakuChanta, check: func(ctx *YakuContext) (int, int) {
		return han(chantaKind(ctx) == 1, 2, 1, ctx)
	}},
	yakuCheckerFunc{id: YakuJunchan, check: func(ctx *YakuContext) (int, int) {
		return han(chantaKind(ctx) == 2, 3, 2, ctx)
	}},

	// 老头系
	yakuCheckerFunc{id: YakuHonroto, check: func(ctx *YakuContext) (int, int) {
		return han(allTiles(ctx, TileType.IsYaochu), 2, 2, ctx)
	}},

	// 清一色系
	yakuCheckerFunc{id: YakuHonitsu, check: func(ctx *YakuContext) (int, int) {
		return han(flushKind(ctx) == 1, 3, 2, ctx)
	}},
	yakuCheckerFunc{id: YakuChinitsu, check: func(ctx *YakuContext) (int, int) {
		return han(flushKind(ctx) == 2, 6, 5, ctx)
	}},

	// 刻子系
	yakuCheckerFunc{id: YakuToitoi, check: func(ctx *YakuContext) (int, int) {
		return han(!ctx.shape.chiitoi && countTripletsIn(ctx, func(TileType) bool { return true }) == 4, 2, 2, ctx)
	}},
	yakuCheckerFunc{id: YakuSananko, check: func(ctx *YakuContext) (int, int) {
		return han(concealedTriplets(ctx) == 3, 2, 2, ctx)
	}},
	yakuCheckerFunc{id: YakuSankantsu, check: func(ctx *YakuContext) (int, int) {
		return han(countKans(ctx) == 3, 2, 2, ctx)
	}},
	yakuCheckerFunc{id: YakuSanshokuDoukou, check: func(ctx *YakuContext) (int, int) {
		return han(hasSanshoku(ctx, blockTriplet), 2, 2, ctx)
	}},
	yakuCheckerFunc{id: YakuShousangen, check: func(ctx *YakuContext) (int, int) {
		ok := !ctx.shape.chiitoi && countTripletsIn(ctx, TileType.IsDragon) == 2 && ctx.shape.pair.IsDragon()
		return han(ok, 2, 2, ctx)
	}},

	// 特殊型
	yakuCheckerFunc{id: YakuChiitoi, check: func(ctx *YakuContext) (int, int) {
		return han(ctx.shape.chiitoi, 2, 0, ctx)
	}},
}

func isGreen(t TileType) bool {
	switch t {
	case So2, So3, So4, So6, So8, Green:
		return true
	default:
		return false
	}
}

func allTiles(ctx *YakuContext, pred func(TileType) bool) bool {
	for tt, c := range ctx.all {
		if c > 0 && !pred(TileType(tt)) {
			return false
		}
	}
	return true
}

func countTripletsIn(ctx *YakuContext, pred func(TileType) bool) int {
	n := 0
	for _, b := range ctx.shape.blocks {
		if b.isTripletLike() && pred(b.tile) {
			n++
		}
	}
	return n
}

func hasTriplet(ctx *YakuContext, tt TileType) bool {
	return countTripletsIn(ctx, func(t TileType) bool { return t == tt }) > 0
}

// concealedTriplets 暗刻数（含暗杠），荣和完成的双碰刻子不算
func concealedTriplets(ctx *YakuContext) int {
	n := 0
	for _, b := range ctx.shape.blocks {
		if b.isTripletLike() && !b.open {
			n++
		}
	}
	return n
}

func countKans(ctx *YakuContext) int {
	n := 0
	for _, b := range ctx.shape.blocks {
		if b.kind == blockKan {
			n++
		}
	}
	return n
}

func isYakuhaiPair(ctx *YakuContext, tt TileType) bool {
	return tt.IsDragon() || tt == ctx.seatWind || tt == ctx.roundWind
}

func isPinfu(ctx *YakuContext) bool {
	if !ctx.menzen || ctx.shape.chiitoi || ctx.shape.kokushi || ctx.shape.wait != waitRyanmen {
		return false
	}
	for _, b := range ctx.shape.blocks {
		if b.kind != blockSequence {
			return false
		}
	}
	return !isYakuhaiPair(ctx, ctx.shape.pair)
}

func peikouCount(ctx *YakuContext) int {
	if !ctx.menzen || ctx.shape.chiitoi || ctx.shape.kokushi {
		return 0
	}
	seqs := map[TileType]int{}
	for _, b := range ctx.shape.blocks {
		if b.kind == blockSequence {
			seqs[b.tile]++
		}
	}
	n := 0
	for _, c := range seqs {
		n += c / 2
	}
	return n
}

func hasSanshoku(ctx *YakuContext, kind blockKind) bool {
	var seen [3][9]bool
	for _, b := range ctx.shape.blocks {
		match := b.kind == kind || (kind == blockTriplet && b.kind == blockKan)
		if match && b.tile.IsNumbered() {
			seen[b.tile.Suit()][b.tile.Number()-1] = true
		}
	}
	for n := 0; n < 9; n++ {
		if seen[0][n] && seen[1][n] && seen[2][n] {
			return true
		}
	}
	return false
}

func hasIttsu(ctx *YakuContext) bool {
	var seen [3][3]bool
	for _, b := range ctx.shape.blocks {
		if b.kind != blockSequence {
			continue
		}
		switch b.tile.Number() {
		case 1:
			seen[b.tile.Suit()][0] = true
		case 4:
			seen[b.tile.Suit()][1] = true
		case 7:
			seen[b.tile.Suit()][2] = true
		}
	}
	for s := 0; s < 3; s++ {
		if seen[s][0] && seen[s][1] && seen[s][2] {
			return true
		}
	}
	return false
}

// chantaKind 0 不成立，1 混全带幺九，2 纯全带幺九；至少要有一组顺子
func chantaKind(ctx *YakuContext) int {
	if ctx.shape.chiitoi || ctx.shape.kokushi || !ctx.shape.pair.IsYaochu() {
		return 0
	}
	hasSeq := false
	hasHonor := ctx.shape.pair.IsHonor()
	for _, b := range ctx.shape.blocks {
		if !b.hasYaochu() {
			return 0
		}
		if b.kind == blockSequence {
			hasSeq = true
		}
		if b.tile.IsHonor() {
			hasHonor = true
		}
	}
	if !hasSeq {
		return 0
	}
	if hasHonor {
		return 1
	}
	return 2
}

// flushKind 0 不成立，1 混一色，2 清一色
func flushKind(ctx *YakuContext) int {
	suit := -1
	hasHonor := false
	for tt, c := range ctx.all {
		if c == 0 {
			continue
		}
		t := TileType(tt)
		if t.IsHonor() {
			hasHonor = true
			continue
		}
		if suit == -1 {
			suit = t.Suit()
		} else if suit != t.Suit() {
			return 0
		}
	}
	if suit == -1 {
		return 0
	}
	if hasHonor {
		return 1
	}
	return 2
}

// chuurenKind 0 不成立，1 九莲宝灯，2 纯正九莲宝灯（和了前 13 张恰好是 1112345678999）
func chuurenKind(ctx *YakuContext) int {
	if !ctx.menzen || len(ctx.sit.Melds) > 0 || flushKind(ctx) != 2 {
		return 0
	}
	suit := ctx.winTile.Type.Suit()
	base := [9]int{3, 1, 1, 1, 1, 1, 1, 1, 3}
	var c9 [9]int
	for n := 0; n < 9; n++ {
		c9[n] = int(ctx.all[suit*9+n])
		if c9[n] < base[n] {
			return 0
		}
	}
	c9[ctx.winTile.Type.Number()-1]--
	if c9 == base {
		return 2
	}
	return 1
}
