// Package envelope generates theoretical isotopic distributions of
// molecular formulas.
//
// Two complementary paths are provided. Generate enumerates individual
// isotopologue states best-first and yields exact fine-structure peaks
// with centroid masses. AggregatedPattern collapses the envelope to
// unit resolution via FFT-domain polynomial exponentiation, which stays
// cheap for formulas far too large to enumerate.
package envelope
