// Package normalisers provides implementations of the Normaliser
// interface. Each normaliser extracts plain text from a specific set of
// MIME types; the Registry resolves the best one for a given type.
package normalisers
