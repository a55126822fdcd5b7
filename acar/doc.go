// Package acar holds the error kinds and unit constants shared by the
// one-dimensional ACAR processing packages.
//
// The processing chain is
//
//	half spectrum -> spectrum.Mirror -> convolution (kernel.Gaussian) -> normalized density -> sw.Compute
//
// Every stage takes immutable inputs and returns new values. Failures are
// reported with errors wrapping one of [ErrInvalidParameter], [ErrInvalidInput]
// or [ErrNumericDegenerate]; test for them with errors.Is.
package acar
