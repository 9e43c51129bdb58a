// Package engine runs the conversation pipeline.
//
// A transcript flows through four stages, strictly in order:
//
//  1. the segmenter splits it into labelled turns;
//  2. the tokenizer classifies each turn's words, asking the oracle about
//     words the lexicon does not know;
//  3. the sentiment aggregator scores the agent, customer and combined
//     token streams;
//  4. the protocol checker evaluates the agent stream.
//
// Turns are tokenized one at a time and at most one oracle query is pending
// at any moment. A word registered while processing one turn is a lexicon
// hit in every later turn.
package engine
