// Package chunker provides code-aware chunking that splits source files at
// declaration boundaries so functions and classes survive chunking intact
// where the budget allows.
package chunker

import (
	"regexp"
	"strings"

	"github.com/ragforge/doc-chunker/internal/document"
)

// language identifies a declaration-pattern family.
type language string

const (
	langPython     language = "python"
	langJavaScript language = "javascript"
	langJava       language = "java"
	langGo         language = "go"
	langRust       language = "rust"
)

// Declaration patterns per language family, matched against
// whitespace-trimmed single lines. A line matching any pattern of the
// active family starts a new unit.
var (
	pythonPatterns = []*regexp.Regexp{
		// Function: def load_config(path):
		regexp.MustCompile(`def\s+\w+\s*\(.*?\):`),
		// Class: class Parser: or class Parser(Base):
		regexp.MustCompile(`class\s+\w+.*?:`),
		// Decorator: @staticmethod
		regexp.MustCompile(`@\w+`),
	}

	javascriptPatterns = []*regexp.Regexp{
		// Function: function load() or const load = async () =>
		regexp.MustCompile(`(?:function\s+\w+\s*\(.*?\)|const\s+\w+\s*=.*?=>|\w+\s*\(.*?\)\s*=>)`),
		// Class: class Parser {
		regexp.MustCompile(`class\s+\w+.*?\{`),
		// Method: async load() { or load(args) {
		regexp.MustCompile(`async\s+\w+\s*\(.*?\)|\w+\s*\(.*?\)[^{]*\{`),
	}

	javaPatterns = []*regexp.Regexp{
		// Class: public final class Parser
		regexp.MustCompile(`(?:public\s+|private\s+|protected\s+)?(?:static\s+)?(?:final\s+)?class\s+\w+`),
		// Method: public static void main(String[] args)
		regexp.MustCompile(`(?:public\s+|private\s+|protected\s+)?(?:static\s+)?(?:final\s+)?(?:synchronized\s+)?\w+\s+\w+\s*\(.*?\)`),
		// Interface: interface Loader
		regexp.MustCompile(`interface\s+\w+`),
	}

	goPatterns = []*regexp.Regexp{
		// Function: func Load(path string) error or func (p *Parser) Load()
		regexp.MustCompile(`func\s+(?:\([^)]*\)\s*)?\w+\s*\(.*?\)`),
		// Interface: type Loader interface
		regexp.MustCompile(`type\s+\w+\s+interface`),
	}

	rustPatterns = []*regexp.Regexp{
		// Function: fn load(path: &str)
		regexp.MustCompile(`fn\s+\w+\s*\(.*?\)`),
		// Struct: struct Parser
		regexp.MustCompile(`struct\s+\w+`),
		// Impl: impl Loader for Parser
		regexp.MustCompile(`impl\s+\w+\s+for`),
	}
)

// patternFamilies maps a language to its declaration patterns. Languages
// listed in codeExtensions without a family of their own fall back to the
// python patterns.
var patternFamilies = map[language][]*regexp.Regexp{
	langPython:     pythonPatterns,
	langJavaScript: javascriptPatterns,
	langJava:       javaPatterns,
	langGo:         goPatterns,
	langRust:       rustPatterns,
}

// codeExtensions maps source file extensions to language names for metadata
// tagging. Unmapped extensions default to python.
var codeExtensions = map[string]language{
	"py":    langPython,
	"pyi":   langPython,
	"js":    langJavaScript,
	"jsx":   langJavaScript,
	"ts":    langJavaScript,
	"tsx":   langJavaScript,
	"java":  langJava,
	"go":    langGo,
	"rs":    langRust,
	"cpp":   "cpp",
	"c":     "c",
	"h":     "c",
	"cs":    "csharp",
	"php":   "php",
	"rb":    "ruby",
	"swift": "swift",
	"kt":    "kotlin",
}

// Overlap windows for code packing, counted in units carried into the next
// chunk rather than tokens.
const (
	unitOverlap = 3
	lineOverlap = 5
)

// CodeChunker splits source files at declaration boundaries. Content between
// boundaries stays attached to the declaration above it.
type CodeChunker struct {
	config Config
}

// NewCodeChunker creates a code chunker with the given budgets.
func NewCodeChunker(cfg Config) *CodeChunker {
	return &CodeChunker{config: cfg.withDefaults()}
}

// Name returns the chunker strategy name.
func (c *CodeChunker) Name() string {
	return string(StrategyCode)
}

// Chunk splits sections into chunks. The language is detected once from the
// source file extension and applied to every section.
func (c *CodeChunker) Chunk(sections []document.Section, source string) ([]Chunk, error) {
	lang := detectLanguage(source)

	var chunks []Chunk
	for _, section := range sections {
		chunks = append(chunks, c.chunkSection(section, source, lang)...)
	}
	stampIndices(chunks, source)
	return chunks, nil
}

// detectLanguage resolves the language from the source file extension.
func detectLanguage(source string) language {
	if lang, ok := codeExtensions[extension(source)]; ok {
		return lang
	}
	return langPython
}

// familyFor returns the declaration patterns for a language.
func familyFor(lang language) []*regexp.Regexp {
	if patterns, ok := patternFamilies[lang]; ok {
		return patterns
	}
	return patternFamilies[langPython]
}

func (c *CodeChunker) chunkSection(section document.Section, source string, lang language) []Chunk {
	content := section.Content
	if strings.TrimSpace(content) == "" {
		return nil
	}

	if EstimateTokens(content) <= c.config.MaxTokens {
		return []Chunk{newCodeChunk(content, section, source, string(lang))}
	}

	units := splitUnits(content, familyFor(lang))
	if units == nil {
		// No recognizable declarations; pack raw lines instead.
		return c.packUnits(strings.Split(content, "\n"), lineOverlap, section, source, lang)
	}
	return c.packUnits(units, unitOverlap, section, source, lang)
}

// splitUnits groups lines into logical units, each anchored at a declaration
// line with its continuation lines attached. Lines before the first
// declaration form a leading unit so prologue such as imports is kept.
// Returns nil when no line matches any declaration pattern.
func splitUnits(content string, patterns []*regexp.Regexp) []string {
	var (
		units       []string
		sawBoundary bool
	)

	for _, line := range strings.Split(content, "\n") {
		switch {
		case matchesAny(strings.TrimSpace(line), patterns):
			units = append(units, line)
			sawBoundary = true
		case len(units) > 0:
			units[len(units)-1] += "\n" + line
		default:
			units = append(units, line)
		}
	}

	if !sawBoundary {
		return nil
	}
	return units
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// packUnits greedily fills chunks with units, carrying a fixed window of
// trailing units as overlap into the next chunk. The window shrinks when it
// would push the next chunk past the budget. A unit that alone exceeds the
// budget is split by lines; a single line that still exceeds it is emitted
// as an over-budget chunk rather than split mid-line.
func (c *CodeChunker) packUnits(units []string, overlap int, section document.Section, source string, lang language) []Chunk {
	var (
		chunks  []Chunk
		current []string
	)

	flush := func() {
		text := strings.Join(current, "\n")
		if strings.TrimSpace(text) == "" {
			return
		}
		chunks = append(chunks, newCodeChunk(text, section, source, string(lang)))
	}

	for _, unit := range units {
		if EstimateTokens(unit) > c.config.MaxTokens {
			flush()
			current = nil

			if lines := strings.Split(unit, "\n"); len(lines) > 1 {
				chunks = append(chunks, c.packUnits(lines, lineOverlap, section, source, lang)...)
			} else {
				chunks = append(chunks, newCodeChunk(unit, section, source, string(lang)))
			}
			continue
		}

		if len(current) > 0 && EstimateTokens(strings.Join(current, "\n")+"\n"+unit) > c.config.MaxTokens {
			flush()

			carry := overlap
			if carry > len(current) {
				carry = len(current)
			}
			current = append([]string(nil), current[len(current)-carry:]...)
			for len(current) > 0 && EstimateTokens(strings.Join(current, "\n")+"\n"+unit) > c.config.MaxTokens {
				current = current[1:]
			}
		}
		current = append(current, unit)
	}

	flush()
	return chunks
}
