// Package voices lists the voices a synthesis provider offers, grouped by
// voice family, so users can pick a value for --voice.
package voices
