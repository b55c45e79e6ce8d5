// Package processor contains the pipeline that turns Hebrew text into
// speech. It orchestrates vowelization, Ashkenazi transliteration and
// synthesis, writes the resulting clips and transcripts, and drives batch
// runs. This package is the coordinator between all other components.
package processor
