package visualization

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	explorationIterations = 250
	initialMomentum       = 0.5
	finalMomentum         = 0.8
	minGain               = 0.01
	perplexityTolerance   = 1e-5
	perplexitySteps       = 100
	machineEpsilon        = 2.220446049250313e-16
	initScale             = 1e-4
)

// TSNE computes an exact t-SNE embedding. The first explorationIterations
// steps run with EarlyExaggeration applied to the affinities.
type TSNE struct {
	Components        int
	Perplexity        float64
	LearningRate      float64
	Iterations        int
	EarlyExaggeration float64
	Seed              uint64
}

func DefaultTSNE() TSNE {
	return TSNE{
		Components:        2,
		Perplexity:        30,
		LearningRate:      200,
		Iterations:        1000,
		EarlyExaggeration: 12,
		Seed:              42,
	}
}

// Embed maps the rows of x into t.Components dimensions. Initial positions
// come from the leading principal components, scaled so the first has
// standard deviation 1e-4.
func (t TSNE) Embed(ctx context.Context, x *mat.Dense) (*mat.Dense, error) {
	n, _ := x.Dims()
	if n < 2 {
		return nil, fmt.Errorf("%w: t-SNE needs at least 2 rows, got %d", ErrTooFewSamples, n)
	}
	if t.Components < 1 || t.Iterations < 1 || t.LearningRate <= 0 || t.Perplexity <= 0 {
		return nil, fmt.Errorf("visualization: invalid t-SNE parameters %+v", t)
	}

	perplexity := min(t.Perplexity, float64(n-1))
	p := jointProbabilities(squaredDistances(x), perplexity)
	y := t.initialEmbedding(x)

	exaggeration := t.EarlyExaggeration
	if exaggeration <= 0 {
		exaggeration = 1
	}

	update := mat.NewDense(n, t.Components, nil)
	gains := mat.NewDense(n, t.Components, nil)
	for i := range n {
		for d := range t.Components {
			gains.Set(i, d, 1)
		}
	}
	grad := mat.NewDense(n, t.Components, nil)
	num := mat.NewDense(n, n, nil)

	var klDivergence float64
	for iter := range t.Iterations {
		if iter%50 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		momentum, exag := finalMomentum, 1.0
		if iter < explorationIterations {
			momentum, exag = initialMomentum, exaggeration
		}

		klDivergence = gradient(p, y, num, grad, exag)

		for i := range n {
			for d := range t.Components {
				g := grad.At(i, d)
				u := update.At(i, d)
				gain := gains.At(i, d)
				if g*u < 0 {
					gain += 0.2
				} else {
					gain *= 0.8
				}
				gain = max(gain, minGain)
				gains.Set(i, d, gain)

				u = momentum*u - t.LearningRate*gain*g
				update.Set(i, d, u)
				y.Set(i, d, y.At(i, d)+u)
			}
		}
	}

	log.Debug().Int("rows", n).Float64("perplexity", perplexity).Int("iterations", t.Iterations).
		Float64("klDivergence", klDivergence).Msg("t-SNE embedding finished")

	return y, nil
}

func squaredDistances(x *mat.Dense) *mat.Dense {
	n, _ := x.Dims()
	d := mat.NewDense(n, n, nil)
	for i := range n {
		ri := x.RawRowView(i)
		for j := i + 1; j < n; j++ {
			dist := floats.Distance(ri, x.RawRowView(j), 2)
			d.Set(i, j, dist*dist)
			d.Set(j, i, dist*dist)
		}
	}
	return d
}

// jointProbabilities finds, per row, the Gaussian bandwidth whose conditional
// distribution has the requested perplexity, then symmetrises and normalises.
func jointProbabilities(dist *mat.Dense, perplexity float64) *mat.Dense {
	n, _ := dist.Dims()
	target := math.Log(perplexity)
	cond := mat.NewDense(n, n, nil)
	row := make([]float64, n)

	for i := range n {
		beta := 1.0
		betaLo, betaHi := math.Inf(-1), math.Inf(1)
		di := dist.RawRowView(i)

		for range perplexitySteps {
			sum := 0.0
			for j := range n {
				if j == i {
					row[j] = 0
					continue
				}
				row[j] = math.Exp(-di[j] * beta)
				sum += row[j]
			}
			if sum == 0 {
				sum = 1e-8
			}

			weighted := 0.0
			for j := range n {
				row[j] /= sum
				weighted += di[j] * row[j]
			}

			diff := math.Log(sum) + beta*weighted - target
			if math.Abs(diff) <= perplexityTolerance {
				break
			}
			if diff > 0 {
				betaLo = beta
				if math.IsInf(betaHi, 1) {
					beta *= 2
				} else {
					beta = (beta + betaHi) / 2
				}
			} else {
				betaHi = beta
				if math.IsInf(betaLo, -1) {
					beta /= 2
				} else {
					beta = (beta + betaLo) / 2
				}
			}
		}

		cond.SetRow(i, row)
	}

	var joint mat.Dense
	joint.Add(cond, cond.T())
	total := max(mat.Sum(&joint), machineEpsilon)
	joint.Apply(func(i, j int, v float64) float64 {
		if i == j {
			return 0
		}
		return max(v/total, machineEpsilon)
	}, &joint)

	return &joint
}

// gradient fills grad with the KL-divergence gradient for embedding y and
// returns the divergence itself. num is scratch space for the Student-t kernel.
func gradient(p, y, num, grad *mat.Dense, exaggeration float64) float64 {
	n, dims := y.Dims()

	sumQ := 0.0
	for i := range n {
		yi := y.RawRowView(i)
		num.Set(i, i, 0)
		for j := i + 1; j < n; j++ {
			dist := floats.Distance(yi, y.RawRowView(j), 2)
			q := 1 / (1 + dist*dist)
			num.Set(i, j, q)
			num.Set(j, i, q)
			sumQ += 2 * q
		}
	}
	sumQ = max(sumQ, machineEpsilon)

	kl := 0.0
	grad.Zero()
	for i := range n {
		yi := y.RawRowView(i)
		gi := grad.RawRowView(i)
		for j := range n {
			if i == j {
				continue
			}
			pij := exaggeration * p.At(i, j)
			qij := max(num.At(i, j)/sumQ, machineEpsilon)
			kl += pij * math.Log(max(pij, machineEpsilon)/qij)

			coeff := 4 * (pij - qij) * num.At(i, j)
			yj := y.RawRowView(j)
			for d := range dims {
				gi[d] += coeff * (yi[d] - yj[d])
			}
		}
	}

	return kl
}

// initialEmbedding projects the centred data onto its leading principal
// components. Missing components (fewer features than Components, or a
// degenerate decomposition) are filled with seeded Gaussian noise.
func (t TSNE) initialEmbedding(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	y := mat.NewDense(n, t.Components, nil)

	noise := distuv.Normal{Mu: 0, Sigma: initScale, Src: rand.NewPCG(t.Seed, t.Seed)}
	y.Apply(func(_, _ int, _ float64) float64 { return noise.Rand() }, y)

	var centered mat.Dense
	centered.CloneFrom(x)
	col := make([]float64, n)
	for j := range d {
		mat.Col(col, j, &centered)
		floats.AddConst(-stat.Mean(col, nil), col)
		centered.SetCol(j, col)
	}

	var pc stat.PC
	if !pc.PrincipalComponents(&centered, nil) {
		log.Debug().Msg("PCA initialisation failed, using random initialisation")
		return y
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	_, available := vecs.Dims()
	k := min(t.Components, available)

	var proj mat.Dense
	proj.Mul(&centered, vecs.Slice(0, d, 0, k))

	mat.Col(col, 0, &proj)
	_, std := stat.PopMeanStdDev(col, nil)
	if std == 0 {
		return y
	}

	scale := initScale / std
	for i := range n {
		for j := range k {
			y.Set(i, j, proj.At(i, j)*scale)
		}
	}
	return y
}
