package scoreline

// Evaluation is the output of the two-stage model for one pair of rates
type Evaluation struct {
	LambdaHome float64
	LambdaAway float64
	Rho        float64
	Poisson    Markets
	Corrected  Markets
}

// Model evaluates goal rates into market probabilities
type Model struct {
	rho      float64
	maxGoals int
}

// NewModel creates a model with the given correlation parameter
func NewModel(rho float64) *Model {
	return &Model{rho: rho, maxGoals: MaxGoals}
}

// NewDefaultModel creates a model with DefaultRho
func NewDefaultModel() *Model {
	return NewModel(DefaultRho)
}

// Rho returns the correlation parameter
func (m *Model) Rho() float64 {
	return m.rho
}

// Evaluate builds both the independent and the corrected distribution
func (m *Model) Evaluate(lambdaHome, lambdaAway float64) Evaluation {
	raw := BuildMatrix(lambdaHome, lambdaAway, m.maxGoals)
	corrected := ApplyCorrelation(raw, lambdaHome, lambdaAway, m.rho)

	return Evaluation{
		LambdaHome: lambdaHome,
		LambdaAway: lambdaAway,
		Rho:        m.rho,
		Poisson:    ComputeMarkets(raw),
		Corrected:  ComputeMarkets(corrected),
	}
}
