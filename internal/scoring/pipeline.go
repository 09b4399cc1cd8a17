package scoring

import (
	"fmt"

	"github.com/tensorplex-labs/acquisition/internal/utils/logger"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type AcquisitionParams struct {
	Curiosity               float64
	Weights                 []float64 // one per objective; nil means all ones
	Direction               Direction
	NoveltyWeight           float64
	StandardizedImprovement bool // compute improvement on standardized instead of centred predictions
}

type AcquisitionPipeline struct {
	Params AcquisitionParams
}

type PipelineOption func(*AcquisitionPipeline)

func WithCuriosity(curiosity float64) PipelineOption {
	return func(p *AcquisitionPipeline) {
		p.Params.Curiosity = curiosity
	}
}

func WithWeights(weights []float64) PipelineOption {
	return func(p *AcquisitionPipeline) {
		p.Params.Weights = append([]float64(nil), weights...)
	}
}

func WithDirection(direction Direction) PipelineOption {
	return func(p *AcquisitionPipeline) {
		p.Params.Direction = direction
	}
}

func WithNoveltyWeight(weight float64) PipelineOption {
	return func(p *AcquisitionPipeline) {
		p.Params.NoveltyWeight = weight
	}
}

func WithStandardizedImprovement(enabled bool) PipelineOption {
	return func(p *AcquisitionPipeline) {
		p.Params.StandardizedImprovement = enabled
	}
}

func WithParams(params AcquisitionParams) PipelineOption {
	return func(p *AcquisitionPipeline) {
		p.Params = params
	}
}

func NewAcquisitionPipeline(opts ...PipelineOption) *AcquisitionPipeline {
	p := &AcquisitionPipeline{
		Params: DefaultAcquisitionParams(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process scores a candidate pool. features holds one row per prediction row;
// labeled may be nil when nothing has been labelled yet.
func (p *AcquisitionPipeline) Process(predictions, uncertainties *mat.Dense, features, labeled mat.Matrix) (AcquisitionScores, error) {
	logger.Sugar().Infow("Processing acquisition scores", "params", p.Params)

	if predictions == nil || predictions.IsEmpty() {
		return AcquisitionScores{}, fmt.Errorf("%w: predictions", ErrEmptyInput)
	}
	rows, cols := predictions.Dims()

	weights := p.Params.Weights
	if len(weights) == 0 {
		weights = make([]float64, cols)
		floats.AddConst(1, weights)
	}

	utility, err := calculateUtility(predictions, uncertainties, weights, p.Params.Curiosity, p.Params.Direction, p.Params.StandardizedImprovement)
	if err != nil {
		return AcquisitionScores{}, fmt.Errorf("utility: %w", err)
	}

	if featRows, _ := dims(features); featRows != rows {
		return AcquisitionScores{}, fmt.Errorf("%w: %d feature rows for %d candidates", ErrShapeMismatch, featRows, rows)
	}

	novelty, err := CalculateNovelty(features, labeled)
	if err != nil {
		return AcquisitionScores{}, fmt.Errorf("novelty: %w", err)
	}

	rowUtility := make([]float64, rows)
	for rowIdx := range rows {
		rowUtility[rowIdx] = floats.Sum(utility.RawRowView(rowIdx))
	}

	blended := MinMaxScale(rowUtility)
	floats.AddScaled(blended, p.Params.NoveltyWeight, novelty)

	return AcquisitionScores{
		Utility:    utility,
		RowUtility: rowUtility,
		Novelty:    novelty,
		Combined:   MinMaxScale(blended),
	}, nil
}
