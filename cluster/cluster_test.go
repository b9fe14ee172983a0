package cluster

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

// twoGroups returns points forming two tight clusters and one outlier.
func twoGroups() []Point {
	return []Point{
		{ID: "a1", Embedding: []float32{1, 0, 0}},
		{ID: "a2", Embedding: []float32{0.95, 0.05, 0}},
		{ID: "a3", Embedding: []float32{0.9, 0.1, 0}},
		{ID: "b1", Embedding: []float32{0, 1, 0}},
		{ID: "b2", Embedding: []float32{0.05, 0.95, 0}},
		{ID: "b3", Embedding: []float32{0.1, 0.9, 0}},
		{ID: "outlier", Embedding: []float32{0, 0, 1}},
	}
}

func TestRun_TwoClustersAndNoise(t *testing.T) {
	result, err := Run(twoGroups(), Options{MinClusterSize: 3, Eps: 0.1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Clusters) != 2 {
		t.Fatalf("got %d clusters, want 2: %+v", len(result.Clusters), result.Clusters)
	}
	if len(result.Unclustered) != 1 || result.Unclustered[0] != "outlier" {
		t.Fatalf("unclustered = %v, want [outlier]", result.Unclustered)
	}
	for _, c := range result.Clusters {
		if c.Size() < 3 {
			t.Errorf("cluster %d has %d members, below minimum 3", c.Label, c.Size())
		}
	}
}

func TestRun_NoPointInTwoClusters(t *testing.T) {
	result, err := Run(twoGroups(), Options{MinClusterSize: 3, Eps: 0.1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	seen := make(map[string]int)
	for _, c := range result.Clusters {
		for _, id := range c.PointIDs {
			seen[id]++
		}
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("point %q appears in %d clusters", id, n)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	points := twoGroups()

	first, err := Run(points, Options{MinClusterSize: 3, Eps: 0.1})
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := Run(points, Options{MinClusterSize: 3, Eps: 0.1})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if fmt.Sprintf("%+v", first) != fmt.Sprintf("%+v", second) {
		t.Fatalf("runs differ:\n%+v\n%+v", first, second)
	}
}

func TestRun_NeverFabricatesMembership(t *testing.T) {
	// Four mutually distant points: nothing is dense enough to cluster.
	points := []Point{
		{ID: "p1", Embedding: []float32{1, 0, 0, 0}},
		{ID: "p2", Embedding: []float32{0, 1, 0, 0}},
		{ID: "p3", Embedding: []float32{0, 0, 1, 0}},
		{ID: "p4", Embedding: []float32{0, 0, 0, 1}},
	}

	result, err := Run(points, Options{MinClusterSize: 2, Eps: 0.2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Clusters) != 0 {
		t.Fatalf("got %d clusters from mutually distant points", len(result.Clusters))
	}
	if len(result.Unclustered) != 4 {
		t.Fatalf("unclustered = %v, want all four points", result.Unclustered)
	}
}

// unitAt returns a unit vector at the given angle in degrees.
func unitAt(deg float64) []float32 {
	rad := deg * math.Pi / 180
	return []float32{float32(math.Cos(rad)), float32(math.Sin(rad))}
}

func TestRun_MinSizeHoldsWhenBorderPointsAreClaimed(t *testing.T) {
	// With Eps 0.35 points are neighbors within ~49 degrees. "bridge"
	// sits in both dense neighborhoods; the first cluster claims it as a
	// border point, which leaves the second core with only three
	// assignable members.
	points := []Point{
		{ID: "a", Embedding: unitAt(0)},
		{ID: "bridge", Embedding: unitAt(45)},
		{ID: "b", Embedding: unitAt(-45)},
		{ID: "c", Embedding: unitAt(-40)},
		{ID: "d", Embedding: unitAt(90)},
		{ID: "e", Embedding: unitAt(100)},
		{ID: "f", Embedding: unitAt(101)},
	}

	result, err := Run(points, Options{MinClusterSize: 4, Eps: 0.35})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, c := range result.Clusters {
		if c.Size() < 4 {
			t.Errorf("cluster %d has %d members, below minimum 4", c.Label, c.Size())
		}
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1: %+v", len(result.Clusters), result.Clusters)
	}
	if result.Clusters[0].Size() != 4 {
		t.Fatalf("kept cluster has %d members, want 4", result.Clusters[0].Size())
	}

	want := []string{"d", "e", "f"}
	if len(result.Unclustered) != len(want) {
		t.Fatalf("unclustered = %v, want %v", result.Unclustered, want)
	}
	for i, id := range want {
		if result.Unclustered[i] != id {
			t.Fatalf("unclustered = %v, want %v in input order", result.Unclustered, want)
		}
	}
}

func TestRun_MaxClustersKeepsLargest(t *testing.T) {
	points := []Point{
		// Big cluster: four aligned points.
		{ID: "big1", Embedding: []float32{1, 0, 0}},
		{ID: "big2", Embedding: []float32{0.99, 0.01, 0}},
		{ID: "big3", Embedding: []float32{0.98, 0.02, 0}},
		{ID: "big4", Embedding: []float32{0.97, 0.03, 0}},
		// Small cluster: two aligned points.
		{ID: "small1", Embedding: []float32{0, 1, 0}},
		{ID: "small2", Embedding: []float32{0.01, 0.99, 0}},
	}

	result, err := Run(points, Options{MinClusterSize: 2, Eps: 0.1, MaxClusters: 1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(result.Clusters))
	}
	if result.Clusters[0].Size() != 4 {
		t.Fatalf("kept cluster has %d members, want the 4-member cluster", result.Clusters[0].Size())
	}
	if len(result.Unclustered) != 2 {
		t.Fatalf("unclustered = %v, want the demoted small cluster", result.Unclustered)
	}
}

func TestRun_Centroids(t *testing.T) {
	points := []Point{
		{ID: "p1", Embedding: []float32{1, 0}},
		{ID: "p2", Embedding: []float32{1, 0}},
	}

	result, err := Run(points, Options{MinClusterSize: 2, Eps: 0.1, ComputeCentroids: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(result.Clusters))
	}

	centroid := result.Clusters[0].Centroid
	if centroid == nil {
		t.Fatal("centroid missing")
	}
	want := []float32{1, 0}
	for i := range want {
		if math.Abs(float64(centroid[i]-want[i])) > 1e-6 {
			t.Fatalf("centroid = %v, want %v", centroid, want)
		}
	}
}

func TestRun_NoCentroidsByDefault(t *testing.T) {
	points := []Point{
		{ID: "p1", Embedding: []float32{1, 0}},
		{ID: "p2", Embedding: []float32{1, 0}},
	}

	result, err := Run(points, Options{MinClusterSize: 2, Eps: 0.1})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Clusters[0].Centroid != nil {
		t.Fatalf("centroid = %v, want nil when not requested", result.Clusters[0].Centroid)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	_, err := Run(nil, Options{})
	if !errors.Is(err, ErrNoPoints) {
		t.Fatalf("err = %v, want ErrNoPoints", err)
	}
}

func TestRun_DuplicateID(t *testing.T) {
	points := []Point{
		{ID: "p", Embedding: []float32{1, 0}},
		{ID: "p", Embedding: []float32{0, 1}},
	}
	_, err := Run(points, Options{})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}
