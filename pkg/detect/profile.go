// Package detect guesses the programming language of a source snippet.
//
// Detection is a two-stage heuristic: a filename extension lookup that is
// authoritative when it matches, and a weighted content scorer over a fixed
// set of per-language profiles with pairwise disambiguation for confusable
// languages. Every call is a pure function of its inputs; the profile table
// is immutable after init.
package detect

import "regexp"

// Language labels returned by Detect. An empty string means the language
// could not be determined.
const (
	LangPython     = "Python"
	LangJavaScript = "JavaScript"
	LangTypeScript = "TypeScript"
	LangJava       = "Java"
	LangC          = "C"
	LangCPP        = "C++"
	LangGo         = "Go"
	LangRust       = "Rust"
	LangRuby       = "Ruby"
	LangPHP        = "PHP"
)

// Profile describes the detection signals for one language. Weights encode
// how distinctive each signal class is: structural patterns rarely appear by
// coincidence, so they carry the most weight.
type Profile struct {
	Name     string
	Keywords []string
	Builtins []string
	Patterns []*regexp.Regexp

	KeywordWeight float64
	BuiltinWeight float64
	PatternWeight float64
}

const (
	// maxSignalCount caps how many occurrences of a single signal count
	// toward the score. A keyword repeated 500 times is not 100x stronger
	// evidence than one repeated 5 times.
	maxSignalCount = 5

	// minContentLength is the minimum trimmed content length worth scoring.
	minContentLength = 10

	// scoreFloor is the minimum adjusted score a language must strictly
	// exceed to be returned as a positive classification.
	scoreFloor = 5
)

// extLanguages maps lower-cased filename extensions to language labels.
// An extension match is final: content is never consulted.
var extLanguages = map[string]string{
	"py":   LangPython,
	"pyw":  LangPython,
	"pyi":  LangPython,
	"js":   LangJavaScript,
	"mjs":  LangJavaScript,
	"cjs":  LangJavaScript,
	"jsx":  LangJavaScript,
	"ts":   LangTypeScript,
	"tsx":  LangTypeScript,
	"mts":  LangTypeScript,
	"java": LangJava,
	"c":    LangC,
	"h":    LangC,
	"cpp":  LangCPP,
	"cc":   LangCPP,
	"cxx":  LangCPP,
	"hpp":  LangCPP,
	"hxx":  LangCPP,
	"go":   LangGo,
	"rs":   LangRust,
	"rb":   LangRuby,
	"php":  LangPHP,
}

// profiles is the ordered profile table. Slice order pins the tie-break:
// when two languages end up with the same adjusted score, the one declared
// first wins. Adding a language is additive, but any new confusable pair
// needs its own rule in disambiguate.go.
var profiles = []Profile{
	{
		Name:     LangPython,
		Keywords: []string{"def ", "elif ", "lambda ", "yield ", "self.", "import "},
		Builtins: []string{"print(", "range(", "len(", "__init__"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(.*\)\s*:`),
			regexp.MustCompile(`(?m)^\s*(?:from\s+\w[\w.]*\s+)?import\s+\w`),
			regexp.MustCompile(`(?m)^\s*(?:if|elif|else|for|while|class|def|with|try|except)\b.*:\s*$`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangJavaScript,
		Keywords: []string{"function ", "const ", "let ", "var ", "=>"},
		Builtins: []string{"console.log(", "document.", "require(", "JSON."},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bfunction\s+\w+\s*\(`),
			regexp.MustCompile(`\b(?:const|let|var)\s+\w+\s*=`),
			regexp.MustCompile(`=>\s*\{`),
			regexp.MustCompile(`(?m)^\s*(?:import|export)\b.+\bfrom\s+['"]`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangTypeScript,
		Keywords: []string{"interface ", "implements ", "enum ", "readonly ", "declare "},
		Builtins: []string{"console.log(", ": string", ": number", ": boolean"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`:\s*(?:string|number|boolean|any|void|unknown)\b`),
			regexp.MustCompile(`\binterface\s+\w+`),
			regexp.MustCompile(`\bimport\s+type\b`),
			regexp.MustCompile(`\b(?:const|let|var)\s+\w+\s*:\s*\w+`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangJava,
		Keywords: []string{"public ", "private ", "protected ", "extends ", "implements "},
		Builtins: []string{"System.out.", "String[]", "ArrayList", "@Override"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bpublic\s+class\s+\w+`),
			regexp.MustCompile(`\bpublic\s+(?:static\s+)?\w+(?:<[\w, ]+>)?\s+\w+\s*\(`),
			regexp.MustCompile(`(?m)^\s*import\s+java[\w.]*;`),
			regexp.MustCompile(`(?m)^\s*package\s+[\w.]+;`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		// Plain C keywords are weak signals on their own: most of them are
		// legal in C++, Java, and JavaScript too.
		Name:     LangC,
		Keywords: []string{"#include", "#define", "sizeof", "typedef ", "struct "},
		Builtins: []string{"printf(", "scanf(", "malloc(", "free(", "fprintf("},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*#include\s*<[^>]+>`),
			regexp.MustCompile(`\bint\s+main\s*\(`),
			regexp.MustCompile(`\w+\s*\*\s*\w+\s*[=;,)]`),
			regexp.MustCompile(`\breturn\s+0\s*;`),
		},
		KeywordWeight: 1.5,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangCPP,
		Keywords: []string{"std::", "namespace ", "template", "nullptr", "class "},
		Builtins: []string{"cout", "cin", "endl", "push_back(", "printf("},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*#include\s*<[^>]+>`),
			regexp.MustCompile(`\bstd::\w+`),
			regexp.MustCompile(`\bclass\s+\w+`),
			regexp.MustCompile(`\btemplate\s*<`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangGo,
		Keywords: []string{"func ", ":=", "defer ", "chan ", "go func"},
		Builtins: []string{"fmt.", "make(", "append(", "len("},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^package\s+\w+$`),
			regexp.MustCompile(`\bfunc\s+(?:\(\w+ \*?\w+\) )?\w+\s*\(`),
			regexp.MustCompile(`(?m)^\s*import\s+\(`),
			regexp.MustCompile(`\bif\s+err\s*!=\s*nil\b`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangRust,
		Keywords: []string{"fn ", "let mut ", "impl ", "pub ", "match "},
		Builtins: []string{"println!(", "vec!", "String::", "Some(", "None"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bfn\s+\w+\s*\(`),
			regexp.MustCompile(`\blet\s+(?:mut\s+)?\w+\s*=`),
			regexp.MustCompile(`#\[\w+`),
			regexp.MustCompile(`->\s*(?:\w+|\(\))\s*\{`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangRuby,
		Keywords: []string{"def ", "puts ", "require ", "attr_", ".each"},
		Builtins: []string{"to_s", "nil?", "gsub(", "Hash.new"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*def\s+\w+`),
			regexp.MustCompile(`(?m)^\s*end\s*$`),
			regexp.MustCompile(`\bdo\s*\|\w+`),
			regexp.MustCompile(`(?m)^\s*require\s+['"]`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
	{
		Name:     LangPHP,
		Keywords: []string{"<?php", "echo ", "$this->", "foreach ("},
		Builtins: []string{"var_dump(", "array(", "strlen(", "isset("},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^<\?php`),
			regexp.MustCompile(`\$\w+\s*=`),
			regexp.MustCompile(`\bfunction\s+\w+\s*\(\s*\$`),
			regexp.MustCompile(`->\w+\(`),
		},
		KeywordWeight: 2,
		BuiltinWeight: 3,
		PatternWeight: 4,
	},
}

// Languages returns the labels of all configured profiles in priority order.
func Languages() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
