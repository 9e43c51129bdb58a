// Package resolve implements the resolution protocol for words that are not in
// the lexicon.
//
// For each unrecognized word the Resolver computes a shortlist of similar
// lexemes, asks an Oracle what to do, and turns the answer into a token:
//
//   - Cancel: the word stays unresolved ("unknown", weight 0)
//   - Select(s): the word is replaced by lexicon word s and a Correction is
//     recorded
//   - KeepNew(category, weight): the word is registered in the lexicon as a
//     new lexeme; no Correction is recorded
//
// The oracle call is synchronous and is the only point where analysis waits on
// something outside the process. Oracle failures degrade to Cancel.
package resolve
