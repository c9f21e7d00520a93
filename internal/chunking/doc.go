// Package chunking turns extracted page text into bounded, overlapping
// chunks. Chunk sizes are expressed in tokens of the shared subword
// encoding, so a chunk that fits the ingestion budget also fits the
// same budget at query time.
package chunking
