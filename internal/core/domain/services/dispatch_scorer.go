package services

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"dispatch/internal/core/domain/geo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// weightSumTolerance bounds the rounding error accepted on the weight sum.
const weightSumTolerance = 1e-9

// Weights are the coefficients of the composite dispatch score. They must be
// non-negative and add up to one.
type Weights struct {
	Time     float64
	Rating   float64
	Load     float64
	Distance float64
}

// DefaultWeights favours quick arrival, then courier quality, then load
// balancing, then raw proximity.
func DefaultWeights() Weights {
	return Weights{Time: 0.4, Rating: 0.3, Load: 0.2, Distance: 0.1}
}

// Validate checks the weights are usable.
func (w Weights) Validate() error {
	var errList []error
	for name, v := range map[string]float64{
		"time weight":     w.Time,
		"rating weight":   w.Rating,
		"load weight":     w.Load,
		"distance weight": w.Distance,
	} {
		if math.IsNaN(v) || v < 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError(name, v, 0, 1))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	if sum := w.Time + w.Rating + w.Load + w.Distance; math.Abs(sum-1) > weightSumTolerance {
		return errs.NewValueIsInvalidErrorWithCause("weights", fmt.Errorf("weights add up to %v, want 1", sum))
	}
	return nil
}

// ScoreResult is one ranked candidate. It is computed per request and never stored.
type ScoreResult struct {
	CourierID    kernel.UUID
	Name         string
	Status       courier.Status
	DistanceKm   float64
	ETAMinutes   int
	Rating       float64
	ActiveOrders int
	Score        float64
}

// DispatchScorer ranks candidate couriers for a drop-off point.
//
// For every candidate with a known location:
//
//	eta       = EstimateMinutes(distance)
//	timeScore = 1/(eta+1), ratingScore = rating/5
//	loadScore = 1/(load+1), distScore = 1/(distance+1)
//	score     = weighted sum of the four
//
// Results are ordered by score descending, then distance ascending, then
// courier id ascending, so equal inputs always produce the same order.
//
// DispatchScorer holds no mutable state and is safe for concurrent use.
//
// Example usage:
//
//	scorer, _ := services.NewDispatchScorer(geo.DefaultEstimator(), services.DefaultWeights())
//	ranked, err := scorer.Rank(*o.Dropoff(), available)
//	if err != nil {
//	    return err
//	}
//	if len(ranked) > 0 {
//	    best := ranked[0]
//	}
type DispatchScorer struct {
	estimator geo.Estimator
	weights   Weights
}

// NewDispatchScorer creates a scorer with the given travel time estimator and weights.
//
// Returns:
//   - *DispatchScorer: ready to rank
//   - error: weight validation error
func NewDispatchScorer(estimator geo.Estimator, weights Weights) (*DispatchScorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &DispatchScorer{estimator: estimator, weights: weights}, nil
}

// Estimator returns the travel time estimator used for ETAs.
func (s *DispatchScorer) Estimator() geo.Estimator {
	return s.estimator
}

// Rank scores every candidate against dropoff and returns them best first.
// Candidates without a known location are skipped; an empty input yields an
// empty, non-nil slice.
//
// Parameters:
//   - dropoff: the order delivery point (must be constructed)
//   - candidates: couriers to consider, usually the registry's available list
//
// Returns:
//   - []ScoreResult: ranked candidates
//   - error: validation error for an unconstructed drop-off or courier
func (s *DispatchScorer) Rank(dropoff kernel.Location, candidates []*courier.Courier) ([]ScoreResult, error) {
	if err := dropoff.Validate(); err != nil {
		return nil, err
	}

	results := make([]ScoreResult, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		loc := c.Location()
		if loc == nil {
			continue
		}

		result, err := s.score(dropoff, *loc, c)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	slices.SortStableFunc(results, compareResults)
	return results, nil
}

func (s *DispatchScorer) score(dropoff, from kernel.Location, c *courier.Courier) (ScoreResult, error) {
	distance, err := geo.Between(from, dropoff)
	if err != nil {
		return ScoreResult{}, err
	}
	eta := s.estimator.EstimateMinutes(distance)

	timeScore := 1 / float64(eta+1)
	ratingScore := c.Rating() / courier.MaxRating
	loadScore := 1 / float64(c.ActiveOrders()+1)
	distanceScore := 1 / (distance + 1)

	return ScoreResult{
		CourierID:    c.ID(),
		Name:         c.Name(),
		Status:       c.Status(),
		DistanceKm:   distance,
		ETAMinutes:   eta,
		Rating:       c.Rating(),
		ActiveOrders: c.ActiveOrders(),
		Score: s.weights.Time*timeScore +
			s.weights.Rating*ratingScore +
			s.weights.Load*loadScore +
			s.weights.Distance*distanceScore,
	}, nil
}

func compareResults(a, b ScoreResult) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	case a.DistanceKm < b.DistanceKm:
		return -1
	case a.DistanceKm > b.DistanceKm:
		return 1
	default:
		return a.CourierID.Compare(b.CourierID)
	}
}
