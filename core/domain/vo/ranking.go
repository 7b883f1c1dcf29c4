package vo

import "math"

// RankingType 段位，由安定段位换算，不单独存储
type RankingType int

const (
	// RankingNovice 见习：安定段位 < 1
	RankingNovice RankingType = iota
	// RankingGuard 雀士：1 ~ 3
	RankingGuard
	// RankingHero 豪杰：3 ~ 5
	RankingHero
	// RankingSaint 雀圣：5 ~ 7
	RankingSaint
	// RankingSky 魂天：7 以上，没有 4 位时也算魂天
	RankingSky
)

// 段位下界（左闭右开）
const (
	RankingGuardMin = 1.0
	RankingHeroMin  = 3.0
	RankingSaintMin = 5.0
	RankingSkyMin   = 7.0
)

// GetRankingByDan 根据安定段位获取段位
func GetRankingByDan(dan float64) RankingType {
	switch {
	case math.IsNaN(dan) || dan < RankingGuardMin:
		return RankingNovice
	case dan < RankingHeroMin:
		return RankingGuard
	case dan < RankingSaintMin:
		return RankingHero
	case dan < RankingSkyMin:
		return RankingSaint
	default:
		return RankingSky
	}
}

// String 返回段位名称（用于日志和 JSON）
func (r RankingType) String() string {
	switch r {
	case RankingNovice:
		return "novice"
	case RankingGuard:
		return "guard"
	case RankingHero:
		return "hero"
	case RankingSaint:
		return "saint"
	case RankingSky:
		return "sky"
	default:
		return "unknown"
	}
}

// GetDisplayName 返回段位显示名称（中文）
func (r RankingType) GetDisplayName() string {
	switch r {
	case RankingNovice:
		return "见习"
	case RankingGuard:
		return "雀士"
	case RankingHero:
		return "豪杰"
	case RankingSaint:
		return "雀圣"
	case RankingSky:
		return "魂天"
	default:
		return "未知"
	}
}
