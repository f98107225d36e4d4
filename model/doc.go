// Package model defines the core types shared by the clustering engines.
//
// # Types
//
//   - Point: a planar coordinate pair (X, Y)
//   - ObjectSet: the ordered, fixed-size input of an engine
//   - Path: recorded cluster-center snapshots, oldest first
//
// Points are plain values; an ObjectSet is copied by the engines at
// construction so later mutation by the caller does not leak into a run.
package model
