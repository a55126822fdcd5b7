// Package buffer pools the complex scratch arrays of the FFT convolution
// path so that concurrent convolutions at several resolutions do not
// allocate a fresh pair of transforms each time.
package buffer
