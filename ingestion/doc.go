// Package ingestion orchestrates summarization runs: fetching source media
// or transcripts, driving the generative services, persisting results, and
// streaming progress events to the caller.
package ingestion
