// Package place optimizes component positions before routing.
//
// An [Optimizer] scores a candidate placement by the total Manhattan
// distance between the centers of connected components and offers four
// strategies: simulated annealing ([Optimizer.Anneal]), force-directed
// relaxation ([Optimizer.ForceDirected]), a combined mode that seeds
// annealing with a short force-directed pass, and plain grid arrangement
// ([Optimizer.AutoSpace]). A greedy orientation pass always runs after
// whichever strategy was chosen.
//
// All randomness flows through an injected *rand.Rand so runs are
// reproducible from a seed.
package place
