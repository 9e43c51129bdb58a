// Package model defines the values that flow through a conversation analysis:
// tokens, corrections, speaker turns, sentiment verdicts and protocol reports.
//
// All values are plain data. They are created by the analysis stages and never
// mutated afterwards; slices handed out by one stage are not modified by the
// next.
package model
