package wordgraph

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Metric names, in canonical output order. Every Compute result contains
// exactly this key set, so downstream schemas are fixed at construction.
const (
	MetricNumNodes      = "num_nodes"
	MetricNumEdges      = "num_edges"
	MetricAveDegree     = "ave_degree"
	MetricLCC           = "lcc"
	MetricLSC           = "lsc"
	MetricParallelEdges = "num_p_edges"
	MetricSelfLoops     = "l1"
	MetricLoops2        = "l2"
	MetricLoops3        = "l3"
	MetricDensity       = "d"
	MetricDiameter      = "di"
	MetricAvgPath       = "asp"
)

// MetricNames returns the metric identifiers in canonical order.
func MetricNames() []string {
	return []string{
		MetricNumNodes, MetricNumEdges, MetricAveDegree,
		MetricLCC, MetricLSC, MetricParallelEdges,
		MetricSelfLoops, MetricLoops2, MetricLoops3,
		MetricDensity, MetricDiameter, MetricAvgPath,
	}
}

// Compute evaluates the full metric battery for one graph. Every metric has
// a defined value for the empty graph (NaN where the measure is undefined);
// no input causes an error.
func Compute(g *Graph) map[string]float64 {
	metrics := make(map[string]float64, 12)

	numNodes := g.NumNodes()
	numEdges := g.NumEdges()
	metrics[MetricNumNodes] = float64(numNodes)
	metrics[MetricNumEdges] = float64(numEdges)

	// Average total degree: every edge instance adds one in-degree and one
	// out-degree, so the degree sum is exactly 2E.
	if numNodes > 0 {
		metrics[MetricAveDegree] = 2 * float64(numEdges) / float64(numNodes)
	} else {
		metrics[MetricAveDegree] = math.NaN()
	}

	metrics[MetricLCC] = float64(largestSize(g.connectedComponents()))
	metrics[MetricLSC] = float64(largestSize(g.stronglyConnectedComponents()))

	parallel, parallelSelfLoops, selfLoops := g.edgeRepeatCounts()
	metrics[MetricParallelEdges] = float64(parallel)
	metrics[MetricSelfLoops] = float64(selfLoops)

	l2, l3 := g.loopCounts()
	metrics[MetricLoops2] = l2
	metrics[MetricLoops3] = l3

	// Density is defined for simple graphs, so reduce to a simple-graph
	// edge count: drop self-loops and collapse parallels. Self-loop repeats
	// sit in both subtracted terms, so they are added back once.
	simpleEdges := numEdges - (selfLoops + parallel - parallelSelfLoops)
	switch {
	case simpleEdges < 0:
		metrics[MetricDensity] = math.NaN()
	case numNodes > 0:
		metrics[MetricDensity] = float64(simpleEdges) / float64(numNodes*numNodes)
	default:
		metrics[MetricDensity] = math.NaN()
	}

	metrics[MetricDiameter], metrics[MetricAvgPath] = g.shortestPathStats()
	return metrics
}

func largestSize(components [][]int) int {
	largest := 0
	for _, c := range components {
		if len(c) > largest {
			largest = len(c)
		}
	}
	return largest
}

// edgeRepeatCounts walks the distinct directed pairs once. parallel is the
// number of "extra" repeats of an identical directed edge (multiplicity m
// contributes m-1); parallelSelfLoops is the portion of those repeats that
// are self-loops; selfLoops is the total self-loop instance count.
func (g *Graph) edgeRepeatCounts() (parallel, parallelSelfLoops, selfLoops int) {
	for p, m := range g.mult {
		if p.from == p.to {
			selfLoops += m
		}
		if m > 1 {
			parallel += m - 1
			if p.from == p.to {
				parallelSelfLoops += m - 1
			}
		}
	}
	return parallel, parallelSelfLoops, selfLoops
}

// loopCounts computes the 2-cycle and 3-cycle counts from powers of the
// multiplicity-weighted adjacency matrix. The diagonal is zeroed first so a
// self-loop traversed twice or three times is not mistaken for a cycle.
// Each cycle appears once per member node in the trace, hence the divisors.
func (g *Graph) loopCounts() (l2, l3 float64) {
	n := g.NumNodes()
	if n == 0 {
		return 0, 0
	}

	adjacency := mat.NewDense(n, n, nil)
	for p, m := range g.mult {
		if p.from == p.to {
			continue
		}
		adjacency.Set(p.from, p.to, float64(m))
	}

	var squared, cubed mat.Dense
	squared.Mul(adjacency, adjacency)
	cubed.Mul(adjacency, &squared)

	return mat.Trace(&squared) / 2, mat.Trace(&cubed) / 3
}
