// Package chat answers user questions about an ingested drawing
// version through retrieval-augmented generation.
//
// The Assembler resolves which version the question targets, embeds
// the question once, retrieves bounded sets of summary, note and
// dimension chunks by vector similarity, and hands the rendered
// context plus question to the configured answering model. When no
// context is found the model is never consulted and a fixed fallback
// reply is returned instead.
package chat
