package cluster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/anchorlab/bookforge/vectormath"
)

// Default clustering parameters.
const (
	DefaultMinClusterSize = 3
	DefaultEps            = 0.35
)

// Error values for consistent error handling by callers.
var (
	ErrNoPoints    = errors.New("no points to cluster")
	ErrDuplicateID = errors.New("duplicate point id")
	ErrEmptyID     = errors.New("empty point id")
)

// Point is one item being clustered.
type Point struct {
	ID        string         `json:"id"`
	Embedding []float32      `json:"-"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Cluster is a group of related points.
type Cluster struct {
	// Label identifies the cluster within one clustering call, assigned
	// in discovery order starting at 0.
	Label int `json:"label"`

	// PointIDs lists member ids in input order.
	PointIDs []string `json:"point_ids"`

	// Centroid is the mean of member embeddings, present only when
	// Options.ComputeCentroids is set.
	Centroid []float32 `json:"centroid,omitempty"`
}

// Size returns the number of member points.
func (c Cluster) Size() int { return len(c.PointIDs) }

// Options configures a clustering run. The zero value uses the defaults.
type Options struct {
	// MinClusterSize is the minimum number of mutually dense points that
	// form a cluster. Default: 3.
	MinClusterSize int

	// Eps is the cosine-distance radius (1 - similarity) within which
	// points count as neighbors. Default: 0.35.
	Eps float64

	// MaxClusters caps how many clusters are returned; the largest are
	// kept and the rest move to the unclustered bucket. 0 means no cap.
	MaxClusters int

	// ComputeCentroids attaches the member-mean embedding to each
	// returned cluster.
	ComputeCentroids bool
}

// Result is the outcome of one clustering call.
type Result struct {
	Clusters []Cluster `json:"clusters"`

	// Unclustered lists ids of points that met no cluster's density
	// criterion, in input order.
	Unclustered []string `json:"unclustered"`
}

// Run clusters the given points. Point ids must be unique within the call
// and every embedding must share one dimensionality.
func Run(points []Point, opts Options) (Result, error) {
	if len(points) == 0 {
		return Result{}, fmt.Errorf("%w", ErrNoPoints)
	}

	minSize := opts.MinClusterSize
	if minSize <= 0 {
		minSize = DefaultMinClusterSize
	}
	eps := opts.Eps
	if eps <= 0 {
		eps = DefaultEps
	}

	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		if p.ID == "" {
			return Result{}, ErrEmptyID
		}
		if _, dup := seen[p.ID]; dup {
			return Result{}, fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	dist, err := distanceMatrix(points)
	if err != nil {
		return Result{}, err
	}

	labels := dbscan(points, dist, eps, minSize)
	result := collect(points, labels)
	result = dropUndersized(result, minSize, points)

	if opts.MaxClusters > 0 && len(result.Clusters) > opts.MaxClusters {
		result = capClusters(result, opts.MaxClusters, points)
	}

	if opts.ComputeCentroids {
		byID := make(map[string][]float32, len(points))
		for _, p := range points {
			byID[p.ID] = p.Embedding
		}
		for i := range result.Clusters {
			members := make([][]float32, 0, len(result.Clusters[i].PointIDs))
			for _, id := range result.Clusters[i].PointIDs {
				members = append(members, byID[id])
			}
			center, err := vectormath.Centroid(members)
			if err != nil {
				return Result{}, err
			}
			result.Clusters[i].Centroid = center
		}
	}

	return result, nil
}

// distanceMatrix precomputes pairwise cosine distances.
func distanceMatrix(points []Point) ([][]float64, error) {
	n := len(points)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim, err := vectormath.CosineSimilarity(points[i].Embedding, points[j].Embedding)
			if err != nil {
				return nil, fmt.Errorf("points %q and %q: %w", points[i].ID, points[j].ID, err)
			}
			d := 1 - sim
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist, nil
}

const (
	labelUnvisited = -2
	labelNoise     = -1
)

// dbscan assigns a cluster label per point, or labelNoise.
// Points are scanned in input order and each cluster expands through a
// queue that also preserves input order, so labels are deterministic.
func dbscan(points []Point, dist [][]float64, eps float64, minPts int) []int {
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = labelUnvisited
	}

	neighbors := func(i int) []int {
		var ns []int
		for j := 0; j < n; j++ {
			if dist[i][j] <= eps {
				ns = append(ns, j) // includes i itself
			}
		}
		return ns
	}

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != labelUnvisited {
			continue
		}

		ns := neighbors(i)
		if len(ns) < minPts {
			labels[i] = labelNoise
			continue
		}

		label := next
		next++
		labels[i] = label

		queue := append([]int{}, ns...)
		for head := 0; head < len(queue); head++ {
			j := queue[head]
			if labels[j] == labelNoise {
				labels[j] = label // border point reached from a core
			}
			if labels[j] != labelUnvisited {
				continue
			}
			labels[j] = label

			js := neighbors(j)
			if len(js) >= minPts {
				queue = append(queue, js...)
			}
		}
	}

	return labels
}

// collect turns per-point labels into a Result with input-order members.
func collect(points []Point, labels []int) Result {
	byLabel := make(map[int][]string)
	var order []int
	var noise []string

	for i, p := range points {
		label := labels[i]
		if label == labelNoise {
			noise = append(noise, p.ID)
			continue
		}
		if _, ok := byLabel[label]; !ok {
			order = append(order, label)
		}
		byLabel[label] = append(byLabel[label], p.ID)
	}

	clusters := make([]Cluster, 0, len(order))
	for _, label := range order {
		clusters = append(clusters, Cluster{Label: label, PointIDs: byLabel[label]})
	}

	if noise == nil {
		noise = []string{}
	}
	return Result{Clusters: clusters, Unclustered: noise}
}

// dropUndersized demotes clusters smaller than minSize to the unclustered
// bucket, preserving input order there. A core point whose neighbors were
// already claimed as border points of an earlier cluster can seed a
// cluster below the minimum; such clusters are never returned.
func dropUndersized(r Result, minSize int, points []Point) Result {
	demoted := make(map[string]struct{})
	clusters := make([]Cluster, 0, len(r.Clusters))
	for _, c := range r.Clusters {
		if c.Size() >= minSize {
			clusters = append(clusters, c)
			continue
		}
		for _, id := range c.PointIDs {
			demoted[id] = struct{}{}
		}
	}
	if len(demoted) == 0 {
		return r
	}

	noiseSet := make(map[string]struct{}, len(r.Unclustered))
	for _, id := range r.Unclustered {
		noiseSet[id] = struct{}{}
	}

	unclustered := make([]string, 0, len(demoted)+len(noiseSet))
	for _, p := range points {
		_, wasNoise := noiseSet[p.ID]
		_, wasDemoted := demoted[p.ID]
		if wasNoise || wasDemoted {
			unclustered = append(unclustered, p.ID)
		}
	}

	return Result{Clusters: clusters, Unclustered: unclustered}
}

// capClusters keeps the maxClusters largest clusters and moves the rest to
// the unclustered bucket, preserving input order there.
func capClusters(r Result, maxClusters int, points []Point) Result {
	ranked := append([]Cluster{}, r.Clusters...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Size() != ranked[j].Size() {
			return ranked[i].Size() > ranked[j].Size()
		}
		return ranked[i].Label < ranked[j].Label
	})

	kept := ranked[:maxClusters]
	keptLabels := make(map[int]struct{}, len(kept))
	for _, c := range kept {
		keptLabels[c.Label] = struct{}{}
	}

	demoted := make(map[string]struct{})
	for _, c := range ranked[maxClusters:] {
		for _, id := range c.PointIDs {
			demoted[id] = struct{}{}
		}
	}

	noiseSet := make(map[string]struct{}, len(r.Unclustered))
	for _, id := range r.Unclustered {
		noiseSet[id] = struct{}{}
	}

	var clusters []Cluster
	for _, c := range r.Clusters {
		if _, ok := keptLabels[c.Label]; ok {
			clusters = append(clusters, c)
		}
	}

	unclustered := make([]string, 0, len(demoted)+len(noiseSet))
	for _, p := range points {
		_, wasNoise := noiseSet[p.ID]
		_, wasDemoted := demoted[p.ID]
		if wasNoise || wasDemoted {
			unclustered = append(unclustered, p.ID)
		}
	}

	return Result{Clusters: clusters, Unclustered: unclustered}
}
