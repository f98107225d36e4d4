// Package kernel implements the numerical steps shared by the fuzzy and
// possibilistic c-means engines.
//
// Membership matrices are N×C gonum dense matrices (row i = object,
// column k = cluster). Every kernel is stateless and updates its output
// arguments in place so engines can reuse their buffers across iterations.
package kernel
