package mahjong

// SeedSource 每局洗牌用的种子，由调用方显式传入
type SeedSource interface {
	NextSeed() uint64
}

// SeedSequence splitmix64 序列，同一个起始值总是产生同一串种子
type SeedSequence struct {
	state uint64
}

func NewSeedSequence(gameSeed uint64) *SeedSequence {
	return &SeedSequence{state: gameSeed}
}

func (s *SeedSequence) NextSeed() uint64 {
	s.state += 0x9e3779b97f4a7c15
	return splitmix64(s.state)
}

func splitmix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// FixedSeeds 按给定顺序回放种子，用完后从最后一个种子继续 splitmix64
type FixedSeeds struct {
	seeds []uint64
	pos   int
	tail  *SeedSequence
}

func NewFixedSeeds(seeds ...uint64) *FixedSeeds {
	return &FixedSeeds{seeds: append([]uint64(nil), seeds...)}
}

func (f *FixedSeeds) NextSeed() uint64 {
	if f.pos < len(f.seeds) {
		f.pos++
		return f.seeds[f.pos-1]
	}
	if f.tail == nil {
		var last uint64
		if len(f.seeds) > 0 {
			last = f.seeds[len(f.seeds)-1]
		}
		f.tail = NewSeedSequence(last)
	}
	return f.tail.NextSeed()
}
