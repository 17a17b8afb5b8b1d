package forest

import (
	"math/rand/v2"
	"slices"
)

// Node is one entry of a tree's flat preorder node slice.
// Children always sit at higher indices than their parent.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Leaf      bool      `json:"leaf"`
	Proba     []float64 `json:"proba,omitempty"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// proba walks the tree and returns the class distribution of the reached leaf.
func (t *Tree) proba(x []float64) []float64 {
	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.Leaf {
			return node.Proba
		}
		if x[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// treeBuilder grows a single CART tree on a bootstrap sample.
type treeBuilder struct {
	x           [][]float64
	y           []int
	nClasses    int
	maxDepth    int
	minSplit    int
	maxFeatures int
	rng         *rand.Rand
	nodes       []Node
}

func (b *treeBuilder) grow(samples []int) Tree {
	b.nodes = make([]Node, 0, 2*len(samples))
	b.build(samples, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) build(samples []int, depth int) int {
	counts := b.classCounts(samples)
	self := len(b.nodes)
	b.nodes = append(b.nodes, Node{
		Feature: -1,
		Left:    -1,
		Right:   -1,
		Leaf:    true,
		Proba:   normalize(counts, len(samples)),
	})

	if isPure(counts) || len(samples) < b.minSplit || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return self
	}

	feature, threshold, ok := b.bestSplit(samples, counts)
	if !ok {
		return self
	}

	left := make([]int, 0, len(samples))
	right := make([]int, 0, len(samples))
	for _, s := range samples {
		if b.x[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[self] = Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      l,
		Right:     r,
	}
	return self
}

// bestSplit draws features in random order and evaluates up to maxFeatures of
// them that are not constant on the node. Falls through to further features
// when the drawn ones are all constant.
func (b *treeBuilder) bestSplit(samples []int, parentCounts []int) (int, float64, bool) {
	nFeatures := len(b.x[0])
	order := b.rng.Perm(nFeatures)

	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := gini(parentCounts, len(samples))

	sorted := make([]int, len(samples))
	leftCounts := make([]int, b.nClasses)
	rightCounts := make([]int, b.nClasses)

	visited := 0
	for _, feature := range order {
		if visited >= b.maxFeatures && bestFeature != -1 {
			break
		}

		copy(sorted, samples)
		slices.SortFunc(sorted, func(i, j int) int {
			switch {
			case b.x[i][feature] < b.x[j][feature]:
				return -1
			case b.x[i][feature] > b.x[j][feature]:
				return 1
			}
			return 0
		})
		if b.x[sorted[0]][feature] == b.x[sorted[len(sorted)-1]][feature] {
			continue
		}
		visited++

		clear(leftCounts)
		copy(rightCounts, parentCounts)
		n := len(sorted)
		for pos := 0; pos < n-1; pos++ {
			label := b.y[sorted[pos]]
			leftCounts[label]++
			rightCounts[label]--

			cur := b.x[sorted[pos]][feature]
			next := b.x[sorted[pos+1]][feature]
			if cur == next {
				continue
			}

			nl := pos + 1
			nr := n - nl
			impurity := (float64(nl)*gini(leftCounts, nl) + float64(nr)*gini(rightCounts, nr)) / float64(n)
			if impurity < bestImpurity {
				bestImpurity = impurity
				bestFeature = feature
				bestThreshold = cur + (next-cur)/2
			}
		}
	}

	if bestFeature == -1 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

func (b *treeBuilder) classCounts(samples []int) []int {
	counts := make([]int, b.nClasses)
	for _, s := range samples {
		counts[b.y[s]]++
	}
	return counts
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func normalize(counts []int, total int) []float64 {
	proba := make([]float64, len(counts))
	if total == 0 {
		return proba
	}
	for i, c := range counts {
		proba[i] = float64(c) / float64(total)
	}
	return proba
}

// argmax returns the first index holding the maximum value.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
