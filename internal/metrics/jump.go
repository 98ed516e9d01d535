package metrics

import "github.com/papari-man/LVILC/internal/mcmc"

// JumpDistance tracks the mean Euclidean move per proposal. Rejected
// proposals count as zero jumps, so the value approximates the
// expected displacement of a walker per sweep.
type JumpDistance struct {
	name    string
	total   float64
	samples int
}

func NewJumpDistance() *JumpDistance {
	return &JumpDistance{name: "jump_distance"}
}

func (j *JumpDistance) Name() string { return j.name }

func (j *JumpDistance) Observe(o mcmc.Observation) {
	j.total += o.Jump
	j.samples++
}

func (j *JumpDistance) Value() float64 {
	if j.samples == 0 {
		return 0
	}
	return j.total / float64(j.samples)
}

func (j *JumpDistance) Reset() {
	j.total = 0
	j.samples = 0
}
