package board

// ScorePair is a (middlegame, endgame) centipawn pair, the unit every tapered
// evaluation term produces before the final phase-weighted blend.
type ScorePair struct {
	MG int32
	EG int32
}

func S(mg, eg int32) ScorePair { return ScorePair{MG: mg, EG: eg} }

func (a ScorePair) Add(b ScorePair) ScorePair { return ScorePair{a.MG + b.MG, a.EG + b.EG} }
func (a ScorePair) Sub(b ScorePair) ScorePair { return ScorePair{a.MG - b.MG, a.EG - b.EG} }
func (a ScorePair) Neg() ScorePair            { return ScorePair{-a.MG, -a.EG} }
func (a ScorePair) Mul(n int32) ScorePair     { return ScorePair{a.MG * n, a.EG * n} }
