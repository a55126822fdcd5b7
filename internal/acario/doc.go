// Package acario reads acar1d momentum distributions written by the
// positron simulation and writes convolved spectra and S/W parameters as
// fixed-width text tables or Excel workbooks.
package acario
