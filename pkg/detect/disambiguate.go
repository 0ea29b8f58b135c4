package detect

import "regexp"

// High-precision structural tells used to separate confusable language
// pairs. The additive scorer alone cannot distinguish languages that share
// most of their surface syntax.
var (
	cppTells = regexp.MustCompile(`\b(?:std::|class\s+\w+|template\s*<|namespace\s+\w+|unique_ptr|shared_ptr|vector<|nullptr)`)

	tsTells = regexp.MustCompile(`(?::\s*(?:string|number|boolean|any|void|unknown)\b|\binterface\s+\w+|\bimport\s+type\b|<\w+(?:,\s*\w+)*>\s*\()`)

	javaTells = regexp.MustCompile(`(?m)(?:^\s*(?:package|import)\s+[\w.]+;|System\.out|public\s+static\s+void\s+main)`)

	phpOpenTag = regexp.MustCompile(`(?m)^<\?php`)

	rubyEndTell     = regexp.MustCompile(`(?m)^\s*end\s*$`)
	pythonColonTell = regexp.MustCompile(`(?m)^\s*(?:if|elif|else|for|while|class|def|with|try|except)\b.*:\s*$`)
)

// disambiguate adjusts the raw score map in place for known confusable
// pairs. Rules run in a fixed order because C participates in two pairs
// (C/C++ and C/Java); all other languages appear in at most one rule, so
// their adjustments are order-independent.
func disambiguate(content string, scores map[string]float64) {
	// C vs C++: C++-specific syntax strongly implies not-plain-C. Its
	// absence makes the C++ guess less safe, though C-style code is legal
	// in C++ files, so that penalty is milder.
	if scores[LangC] > 0 && scores[LangCPP] > 0 {
		if cppTells.MatchString(content) {
			scores[LangC] *= 0.3
		} else {
			scores[LangCPP] *= 0.5
		}
	}

	// JavaScript vs TypeScript: type annotations only exist in TypeScript.
	if scores[LangJavaScript] > 0 && scores[LangTypeScript] > 0 {
		if tsTells.MatchString(content) {
			scores[LangJavaScript] *= 0.3
		} else {
			scores[LangTypeScript] *= 0.4
		}
	}

	// C vs Java: package/import statements and System.out never appear in C.
	if scores[LangC] > 0 && scores[LangJava] > 0 && javaTells.MatchString(content) {
		scores[LangC] *= 0.2
	}

	// An opening <?php tag is language-exclusive; let it dominate whatever
	// C-like signals the rest of the file produced.
	if scores[LangPHP] > 0 && phpOpenTag.MatchString(content) {
		scores[LangPHP] *= 2
	}

	// Ruby vs Python: block-closing `end` lines versus trailing-colon
	// control statements. If both or neither tell is present the content is
	// ambiguous and the scores stand as scored.
	if scores[LangRuby] > 0 && scores[LangPython] > 0 {
		hasEnd := rubyEndTell.MatchString(content)
		hasColon := pythonColonTell.MatchString(content)
		switch {
		case hasEnd && !hasColon:
			scores[LangPython] *= 0.3
		case hasColon && !hasEnd:
			scores[LangRuby] *= 0.3
		}
	}
}
