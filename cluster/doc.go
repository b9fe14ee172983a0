// Package cluster groups embeddings into thematic clusters using
// density-based clustering.
//
// The implementation is DBSCAN over cosine distance (1 - cosine
// similarity). Points that do not meet the density criterion for any
// cluster are returned as unclustered rather than forced into a cluster;
// the service never fabricates membership to satisfy a target count.
//
// # Determinism
//
// Density clustering over floating-point distances is sensitive to
// ordering, so the scan order is pinned: points are visited in input
// order, neighbor lists are built in input order, and cluster labels are
// assigned in discovery order. Identical input slices always produce
// identical groupings; the tests assert this by running the service twice.
//
// # Cluster cap
//
// [Options.MaxClusters] is applied after clustering: the largest clusters
// are kept (ties broken by earlier label) and members of the remainder
// move to the unclustered bucket.
package cluster
