// Package domain contains the core entities of the guideline answering
// engine: documents, chunks, answer bundles and their invariants.
// It has no dependencies on other packages in this repository.
package domain
