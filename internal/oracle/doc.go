// Package oracle provides the resolve.Oracle implementations callcheck ships
// with.
//
//   - Reject cancels every query; it is the non-interactive default.
//   - Script answers from a YAML document and records what it was asked.
//   - Prompt asks an operator on a terminal.
//   - LLM asks an OpenAI model for a structured decision.
//
// Every oracle blocks the caller until it has an answer. None of them is
// safe to share between concurrently running conversations except Reject.
package oracle
