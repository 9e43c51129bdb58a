package lexicon

// DefaultSeed returns the seed set written by Initialize on a fresh database.
// It covers each protocol phase category (saludo, identificacion, prohibida,
// despedida) and a handful of sentiment words.
func DefaultSeed() []Entry {
	return []Entry{
		{Lexeme: "bueno", Category: "positivo", Weight: 1},
		{Lexeme: "amable", Category: "positivo", Weight: 2},
		{Lexeme: "problema", Category: "negativo", Weight: -1},
		{Lexeme: "mal", Category: "negativo", Weight: -2},
		{Lexeme: "excelente", Category: "positivo", Weight: 3},
		{Lexeme: "fatal", Category: "negativo", Weight: -3},
		{Lexeme: "hola", Category: "saludo", Weight: 1},
		{Lexeme: "bienvenido", Category: "saludo", Weight: 1},
		{Lexeme: "gracias", Category: "despedida", Weight: 1},
		{Lexeme: "nombre", Category: "identificacion", Weight: 0},
		{Lexeme: "inútil", Category: "prohibida", Weight: -3},
		{Lexeme: "tonto", Category: "prohibida", Weight: -3},
	}
}
