// Package utils provides common utility functions for the gamedata-manager
// application. It includes the in-memory size estimator used for cache
// accounting and helpers for human-readable byte formatting.
package utils
