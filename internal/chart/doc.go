// Package chart renders the survey's two PNG artifacts: the grouped
// per-channel license counts and the relative change between the oldest
// and newest channel for the same top licenses.
package chart
