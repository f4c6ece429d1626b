/*
Copyright © 2024 the HydPy authors.
This file is part of HydPy.

HydPy is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

HydPy is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with HydPy.  If not, see <http://www.gnu.org/licenses/>.
*/

package hydpy

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/sparse"

	"github.com/hydpy-dev/hydpy-sub001/timetools"
)

// InterpAlgorithm is the call contract of the numeric interpolation
// kernels (neural networks, piecewise polynomials) consumed by the
// seasonal blending layer.
type InterpAlgorithm interface {
	NmbInputs() int
	NmbOutputs() int
	Inputs() []float64
	Outputs() []float64
	CalculateValues()
	CalculateDerivatives(inputIndex int)
	OutputDerivatives() []float64
	Verify() error
}

// ConsistencyError reports interpolation algorithms whose input or
// output cardinalities disagree.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string { return e.Message }

// ANN is a minimal feed-forward network with one logistic hidden layer
// satisfying the InterpAlgorithm contract.  A network without hidden
// neurons degenerates to an affine mapping, and one with zero weights
// yields constant outputs equal to its output intercepts.
type ANN struct {
	WeightsInput     [][]float64 // [input][hidden]
	WeightsOutput    [][]float64 // [hidden][output]
	InterceptsHidden []float64
	InterceptsOutput []float64

	inputs            []float64
	outputs           []float64
	outputDerivatives []float64
}

// NewANN allocates a network for the given layer sizes with all weights
// and intercepts zero.
func NewANN(nmbInputs, nmbHidden, nmbOutputs int) *ANN {
	ann := &ANN{
		InterceptsHidden:  make([]float64, nmbHidden),
		InterceptsOutput:  make([]float64, nmbOutputs),
		inputs:            make([]float64, nmbInputs),
		outputs:           make([]float64, nmbOutputs),
		outputDerivatives: make([]float64, nmbOutputs),
	}
	ann.WeightsInput = make([][]float64, nmbInputs)
	for i := range ann.WeightsInput {
		ann.WeightsInput[i] = make([]float64, nmbHidden)
	}
	ann.WeightsOutput = make([][]float64, nmbHidden)
	for i := range ann.WeightsOutput {
		ann.WeightsOutput[i] = make([]float64, nmbOutputs)
	}
	return ann
}

// NmbInputs returns the number of input neurons.
func (a *ANN) NmbInputs() int { return len(a.inputs) }

// NmbOutputs returns the number of output neurons.
func (a *ANN) NmbOutputs() int { return len(a.outputs) }

// Inputs returns the writable input vector.
func (a *ANN) Inputs() []float64 { return a.inputs }

// Outputs returns the output vector of the last calculation.
func (a *ANN) Outputs() []float64 { return a.outputs }

// OutputDerivatives returns the derivative vector of the last
// CalculateDerivatives call.
func (a *ANN) OutputDerivatives() []float64 { return a.outputDerivatives }

func logistic(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

func (a *ANN) hiddenActivations() []float64 {
	hidden := make([]float64, len(a.InterceptsHidden))
	for h := range hidden {
		x := a.InterceptsHidden[h]
		for i, input := range a.inputs {
			x += a.WeightsInput[i][h] * input
		}
		hidden[h] = logistic(x)
	}
	return hidden
}

// CalculateValues propagates the current inputs through the network.
func (a *ANN) CalculateValues() {
	hidden := a.hiddenActivations()
	for o := range a.outputs {
		x := a.InterceptsOutput[o]
		for h, activation := range hidden {
			x += a.WeightsOutput[h][o] * activation
		}
		a.outputs[o] = x
	}
}

// CalculateDerivatives fills the output derivative vector with the
// partial derivatives of all outputs with respect to the given input.
func (a *ANN) CalculateDerivatives(inputIndex int) {
	hidden := a.hiddenActivations()
	for o := range a.outputDerivatives {
		derivative := 0.0
		for h, activation := range hidden {
			dHidden := activation * (1 - activation) *
				a.WeightsInput[inputIndex][h]
			derivative += a.WeightsOutput[h][o] * dHidden
		}
		a.outputDerivatives[o] = derivative
	}
}

// Verify checks the internal consistency of the weight matrices.
func (a *ANN) Verify() error {
	if len(a.WeightsInput) != len(a.inputs) {
		return &ConsistencyError{Message: fmt.Sprintf(
			"the input weight matrix of the artificial neural network "+
				"provides %d rows, but %d inputs are defined",
			len(a.WeightsInput), len(a.inputs))}
	}
	for _, row := range a.WeightsInput {
		if len(row) != len(a.InterceptsHidden) {
			return &ConsistencyError{Message: fmt.Sprintf(
				"an input weight row of the artificial neural network "+
					"provides %d columns, but %d hidden neurons are defined",
				len(row), len(a.InterceptsHidden))}
		}
	}
	if len(a.WeightsOutput) != len(a.InterceptsHidden) {
		return &ConsistencyError{Message: fmt.Sprintf(
			"the output weight matrix of the artificial neural network "+
				"provides %d rows, but %d hidden neurons are defined",
			len(a.WeightsOutput), len(a.InterceptsHidden))}
	}
	for _, row := range a.WeightsOutput {
		if len(row) != len(a.outputs) {
			return &ConsistencyError{Message: fmt.Sprintf(
				"an output weight row of the artificial neural network "+
					"provides %d columns, but %d outputs are defined",
				len(row), len(a.outputs))}
		}
	}
	return nil
}

type seasonalEntry struct {
	toy timetools.TOY
	alg InterpAlgorithm
}

// SeasonalInterpolator holds an ordered-by-time-of-year collection of
// interpolation algorithms and blends the two temporally nearest ones
// linearly for any query point, wrapping around the year boundary.
type SeasonalInterpolator struct {
	pub     *Pub
	entries []seasonalEntry
	ratios  *sparse.DenseArray // [timestep of year][algorithm]
}

// NewSeasonalInterpolator creates an empty interpolator bound to the
// given context (nil selects the package default).
func NewSeasonalInterpolator(pub *Pub) *SeasonalInterpolator {
	if pub == nil {
		pub = defaultPub
	}
	return &SeasonalInterpolator{pub: pub}
}

// Add registers an algorithm at the given time of year and refreshes the
// precomputed blend weights.
func (s *SeasonalInterpolator) Add(toyStr string, alg InterpAlgorithm) error {
	toy, err := timetools.NewTOY(toyStr)
	if err != nil {
		return fmt.Errorf(
			"while trying to register an interpolation algorithm: %w", err)
	}
	for _, entry := range s.entries {
		if entry.toy.Equal(toy) {
			return fmt.Errorf(
				"an interpolation algorithm is already registered for "+
					"the time of year `%v`", toy)
		}
	}
	s.entries = append(s.entries, seasonalEntry{toy: toy, alg: alg})
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].toy.Less(s.entries[j].toy)
	})
	if err := s.Verify(); err != nil {
		return err
	}
	return s.refresh()
}

// Remove drops the algorithm registered at the given time of year.
func (s *SeasonalInterpolator) Remove(toyStr string) error {
	toy, err := timetools.NewTOY(toyStr)
	if err != nil {
		return fmt.Errorf(
			"while trying to remove an interpolation algorithm: %w", err)
	}
	for i, entry := range s.entries {
		if entry.toy.Equal(toy) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			if len(s.entries) > 0 {
				return s.refresh()
			}
			s.ratios = nil
			return nil
		}
	}
	return fmt.Errorf(
		"no interpolation algorithm is registered for the time of year "+
			"`%v`", toy)
}

// Len returns the number of registered algorithms.
func (s *SeasonalInterpolator) Len() int { return len(s.entries) }

// TOYs returns the registered times of year in ascending order.
func (s *SeasonalInterpolator) TOYs() []timetools.TOY {
	toys := make([]timetools.TOY, len(s.entries))
	for i, entry := range s.entries {
		toys[i] = entry.toy
	}
	return toys
}

// Verify checks that all registered algorithms declare identical input
// and output cardinalities.  On violation the complete registered set is
// purged before the error is returned, so no partially consistent state
// remains.
func (s *SeasonalInterpolator) Verify() error {
	if len(s.entries) == 0 {
		return nil
	}
	first := s.entries[0].alg
	for _, entry := range s.entries[1:] {
		if entry.alg.NmbInputs() != first.NmbInputs() ||
			entry.alg.NmbOutputs() != first.NmbOutputs() {
			s.entries = nil
			s.ratios = nil
			return &ConsistencyError{Message: fmt.Sprintf(
				"the interpolation algorithm registered for the time of "+
					"year `%v` declares %d inputs and %d outputs, which "+
					"deviates from the first registered algorithm (%d "+
					"inputs, %d outputs); all algorithms have been removed",
				entry.toy, entry.alg.NmbInputs(), entry.alg.NmbOutputs(),
				first.NmbInputs(), first.NmbOutputs())}
		}
	}
	return nil
}

// weights returns the blend weights of all registered algorithms for an
// arbitrary query time of year: the two bracketing algorithms share
// weight one proportionally to elapsed seconds, all others receive zero.
func (s *SeasonalInterpolator) weights(query timetools.TOY) []float64 {
	weights := make([]float64, len(s.entries))
	if len(s.entries) == 1 {
		weights[0] = 1
		return weights
	}
	// Find the first registered TOY lying strictly after the query
	// point; wrap to the first entry when none exists.
	successor := -1
	for i, entry := range s.entries {
		if query.Less(entry.toy) {
			successor = i
			break
		}
	}
	if successor < 0 {
		successor = 0
	}
	predecessor := successor - 1
	if predecessor < 0 {
		predecessor = len(s.entries) - 1
	}
	span := s.entries[successor].toy.Sub(s.entries[predecessor].toy).Seconds()
	passed := query.Sub(s.entries[predecessor].toy).Seconds()
	ratio := float64(passed) / float64(span)
	weights[successor] = ratio
	weights[predecessor] = 1 - ratio
	return weights
}

// refresh precomputes the blend weights for every centred timestep of
// one calendar year at the active simulation step size.
func (s *SeasonalInterpolator) refresh() error {
	if len(s.entries) == 0 {
		s.ratios = nil
		return nil
	}
	step := s.pub.Options.Simulationstep.Value()
	if step.IsZero() {
		return fmt.Errorf(
			"while trying to refresh the seasonal blend weights: no " +
				"simulation step size is available; publish time grids or " +
				"set the simulationstep option first")
	}
	toys, err := timetools.CenteredTOYs(step)
	if err != nil {
		return fmt.Errorf(
			"while trying to refresh the seasonal blend weights: %w", err)
	}
	ratios := sparse.ZerosDense(len(toys), len(s.entries))
	for i, toy := range toys {
		for j, weight := range s.weights(toy) {
			ratios.Elements[i*len(s.entries)+j] = weight
		}
	}
	s.ratios = ratios
	return nil
}

// Ratios returns the precomputed weight matrix (one row per centred
// timestep of the year, one column per registered algorithm).
func (s *SeasonalInterpolator) Ratios() (*sparse.DenseArray, error) {
	if s.ratios == nil {
		return nil, fmt.Errorf(
			"no seasonal blend weights are available; register at least " +
				"one interpolation algorithm first")
	}
	return s.ratios, nil
}

// Interpolate feeds the inputs into the bracketing algorithms of the
// given query time of year and returns the linearly blended outputs.
func (s *SeasonalInterpolator) Interpolate(
	query timetools.TOY, inputs []float64) ([]float64, error) {
	if len(s.entries) == 0 {
		return nil, fmt.Errorf(
			"while trying to interpolate for the time of year `%v`: no "+
				"algorithms are registered", query)
	}
	first := s.entries[0].alg
	if len(inputs) != first.NmbInputs() {
		return nil, fmt.Errorf(
			"while trying to interpolate for the time of year `%v`: %d "+
				"input values are given, but %d are required",
			query, len(inputs), first.NmbInputs())
	}
	outputs := make([]float64, first.NmbOutputs())
	for i, weight := range s.weights(query) {
		if weight == 0 {
			continue
		}
		alg := s.entries[i].alg
		copy(alg.Inputs(), inputs)
		alg.CalculateValues()
		for o, value := range alg.Outputs() {
			outputs[o] += weight * value
		}
	}
	return outputs, nil
}
