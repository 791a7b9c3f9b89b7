// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: Maps text batches to fixed-dimension vectors
//   - GenerationService: Turns an assembled prompt into answer text
//   - IndexStore: Persists and restores the vector index
//   - DocumentSource: Produces page documents for ingestion
//
// # Optional Interfaces
//
//   - PromptStore: Customisable prompt templates. When nil, services
//     fall back to built-in defaults.
//
// # Import Rules
//
//   - Can Import: domain and vectorindex packages only
//   - Cannot Import: Any adapter package
package driven
