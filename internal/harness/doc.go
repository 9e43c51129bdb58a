// Package harness runs conversation scenarios end to end.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	lexicon:                 # optional; replaces the default seed
//	  - {lexeme: hola, category: saludo, weight: 1}
//	transcript: |
//	  Agent: Hola, muchas grasias.
//	  Customer: Todo bueno.
//	answers:                 # optional scripted oracle answers
//	  grasias: {select: gracias}
//	  todo: {keep: {category: cuantificador, weight: 0}}
//	answer_default: cancel   # or first-suggestion
//	assertions:
//	  - type: sentiment
//	    speaker: agent
//	    label: Positive
//	  - type: protocol
//	    phase: Greeting
//	    status: OK
//	  - type: correction
//	    original: grasias
//	    resolved: gracias
//
// Each scenario runs against a fresh SQLite lexicon in a temporary directory
// with a fixed run ID, so the rendered report is byte-stable and can be
// compared against a golden file.
package harness
