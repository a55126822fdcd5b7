// Package interp evaluates piecewise-linear interpolants of sampled data.
package interp
