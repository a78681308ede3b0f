package forecast

import (
	"errors"
	"math/rand"
	"sort"
)

// BoostingConfig controls gradient boosting.
type BoostingConfig struct {
	Stages       int     `json:"stages"`
	LearningRate float64 `json:"learning_rate"`
	MaxDepth     int     `json:"max_depth"`
	Seed         int64   `json:"seed"`
}

// DefaultBoostingConfig returns 100 stages of depth-3 trees with learning rate 0.1.
func DefaultBoostingConfig() BoostingConfig {
	return BoostingConfig{Stages: 100, LearningRate: 0.1, MaxDepth: 3, Seed: 42}
}

// GradientBoosting is a least-squares gradient boosted ensemble of regression trees.
type GradientBoosting struct {
	Init         float64 `json:"init"`
	LearningRate float64 `json:"learning_rate"`
	NumFeatures  int     `json:"num_features"`
	Trees        []Tree  `json:"trees"`
	// Generation identifies the training run; the matching Scaler carries the same value.
	Generation int64 `json:"generation,omitempty"`
}

// Tree is a binary regression tree stored as a flat node slice; node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is either a split (Leaf false) or a leaf holding Value.
type Node struct {
	Leaf      bool    `json:"leaf,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
	Value     float64 `json:"value,omitempty"`
}

// Predict walks the tree for a single sample.
func (t Tree) Predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// FitBoosting trains an ensemble on x (already scaled) against y.
func FitBoosting(x [][]float64, y []float64, cfg BoostingConfig) (*GradientBoosting, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, errors.New("fit boosting: x and y must be non-empty and the same length")
	}
	if cfg.Stages <= 0 || cfg.LearningRate <= 0 || cfg.MaxDepth <= 0 {
		return nil, errors.New("fit boosting: stages, learning rate and max depth must be positive")
	}
	cols := len(x[0])
	for _, row := range x {
		if len(row) != cols {
			return nil, errors.New("fit boosting: ragged matrix")
		}
	}

	var init float64
	for _, v := range y {
		init += v
	}
	init /= float64(len(y))

	m := &GradientBoosting{
		Init:         init,
		LearningRate: cfg.LearningRate,
		NumFeatures:  cols,
		Trees:        make([]Tree, 0, cfg.Stages),
	}

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = init
	}
	residual := make([]float64, len(y))
	rng := rand.New(rand.NewSource(cfg.Seed))

	for stage := 0; stage < cfg.Stages; stage++ {
		for i := range y {
			residual[i] = y[i] - pred[i]
		}
		b := &treeBuilder{x: x, r: residual, maxDepth: cfg.MaxDepth, rng: rng}
		idx := make([]int, len(y))
		for i := range idx {
			idx[i] = i
		}
		b.build(idx, 0)
		tree := Tree{Nodes: b.nodes}
		for i := range pred {
			pred[i] += cfg.LearningRate * tree.Predict(x[i])
		}
		m.Trees = append(m.Trees, tree)
	}
	return m, nil
}

// Predict returns the ensemble prediction for one scaled sample.
func (m *GradientBoosting) Predict(x []float64) float64 {
	out := m.Init
	for _, t := range m.Trees {
		out += m.LearningRate * t.Predict(x)
	}
	return out
}

func (m *GradientBoosting) valid(cols int) bool {
	if m == nil || m.NumFeatures != cols || len(m.Trees) == 0 {
		return false
	}
	for _, t := range m.Trees {
		if len(t.Nodes) == 0 {
			return false
		}
		for i, n := range t.Nodes {
			if n.Leaf {
				continue
			}
			// Children always follow their parent, which also rules out cycles.
			if n.Feature < 0 || n.Feature >= cols || n.Left <= i || n.Right <= i ||
				n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
				return false
			}
		}
	}
	return true
}

type treeBuilder struct {
	x        [][]float64
	r        []float64
	maxDepth int
	rng      *rand.Rand
	nodes    []Node
}

// build appends the subtree for idx and returns its node index.
func (b *treeBuilder) build(idx []int, depth int) int {
	self := len(b.nodes)
	b.nodes = append(b.nodes, Node{})

	var sum float64
	for _, i := range idx {
		sum += b.r[i]
	}
	leaf := Node{Leaf: true, Value: sum / float64(len(idx))}

	if depth >= b.maxDepth || len(idx) < 2 {
		b.nodes[self] = leaf
		return self
	}

	feature, threshold, ok := b.bestSplit(idx, sum)
	if !ok {
		b.nodes[self] = leaf
		return self
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		b.nodes[self] = leaf
		return self
	}
	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[self] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return self
}

// bestSplit finds the split maximizing the reduction in squared error.
// Features are visited in a seeded random order so ties resolve reproducibly.
func (b *treeBuilder) bestSplit(idx []int, total float64) (int, float64, bool) {
	n := float64(len(idx))
	base := total * total / n
	bestGain := 1e-12
	bestFeature, bestThreshold, found := 0, 0.0, false

	sorted := make([]int, len(idx))
	for _, f := range b.rng.Perm(len(b.x[0])) {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, c int) bool { return b.x[sorted[a]][f] < b.x[sorted[c]][f] })

		var leftSum float64
		for k := 0; k < len(sorted)-1; k++ {
			leftSum += b.r[sorted[k]]
			cur, next := b.x[sorted[k]][f], b.x[sorted[k+1]][f]
			if cur == next {
				continue
			}
			nl := float64(k + 1)
			nr := n - nl
			rightSum := total - leftSum
			gain := leftSum*leftSum/nl + rightSum*rightSum/nr - base
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
				if bestThreshold >= next {
					bestThreshold = cur
				}
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}
