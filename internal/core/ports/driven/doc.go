// Package driven defines the interfaces the engine core depends on:
// storage, indexing, text extraction and the optional paraphrase
// generator. Adapters implement these; the core never imports adapters.
package driven
