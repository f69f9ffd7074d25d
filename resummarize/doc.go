// Package resummarize regenerates the summaries of stored results in bulk,
// for example after a prompt or model change. Results are streamed out of
// storage in batches, re-summarized from their stored transcripts, and
// updated in place.
package resummarize
