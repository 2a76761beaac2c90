// Package routing contains the distance/time oracle and the route optimizer.
//
// The oracle (DistanceEstimator) answers deterministic leg estimates adjusted
// for weather. The Optimizer builds per-vehicle routes with greedy
// cheapest-insertion and a budget-bounded 2-opt improvement pass, honouring
// delivery windows and falling back to conservative straight-line estimates
// when the oracle is unavailable.
package routing
