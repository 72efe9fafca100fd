package language

import (
	"github.com/tildaslashalef/indentwise/internal/analyzer"
)

// syntaxTable maps go-enry language names to the lexical markers the
// analyzer needs. Languages absent from the table fall back to C-like
// syntax, which covers the large family of brace-delimited languages the
// indentation heuristic targets.
var syntaxTable = map[string]analyzer.Syntax{
	"Go": {
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
	},
	"Java": {
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
		Annotations: []string{"@"},
	},
	"Kotlin": {
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
		Annotations: []string{"@"},
	},
	"Scala": {
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
		Annotations: []string{"@"},
	},
	"C#": {
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
		Annotations: []string{"["},
	},
	"Rust": {
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
		Annotations: []string{"#["},
	},
	"PHP": {
		LineComment: "//",
		BlockOpen:   "/*",
		BlockClose:  "*/",
		Annotations: []string{"#["},
	},
	"Python": {
		LineComment: "#",
		Annotations: []string{"@"},
	},
	"Shell": {
		LineComment: "#",
	},
	"Ruby": {
		LineComment: "#",
		BlockOpen:   "=begin",
		BlockClose:  "=end",
	},
	"Perl": {
		LineComment: "#",
	},
	"SQL": {
		LineComment: "--",
		BlockOpen:   "/*",
		BlockClose:  "*/",
	},
	"Lua": {
		LineComment: "--",
		BlockOpen:   "--[[",
		BlockClose:  "]]",
	},
}

// SyntaxFor returns the lexical syntax for a detected language name
func SyntaxFor(lang string) analyzer.Syntax {
	if s, ok := syntaxTable[lang]; ok {
		return s
	}
	return analyzer.CLike()
}
