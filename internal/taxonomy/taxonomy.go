package taxonomy

import (
	"fmt"
	"strings"
	"unicode"
)

// ProductLine identifies which canonical taxonomy applies to a document.
type ProductLine string

const (
	LineAccount    ProductLine = "Account"
	LineCreditCard ProductLine = "CreditCard"
)

// ParseLine maps a user-supplied product line string to a ProductLine.
func ParseLine(s string) (ProductLine, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "account", "accounts":
		return LineAccount, nil
	case "creditcard", "credit_card", "credit-card", "creditcards":
		return LineCreditCard, nil
	default:
		return "", fmt.Errorf("unknown product line: %q", s)
	}
}

// MatchMode controls how heading keywords are compared against a line.
type MatchMode int

const (
	MatchContains MatchMode = iota
	MatchPrefix
)

// FallbackPolicy controls the canonical type for an unclassifiable heading.
type FallbackPolicy int

const (
	// FallbackTitleCase uses the title-cased raw heading as the type.
	FallbackTitleCase FallbackPolicy = iota
	// FallbackUnknown tags unclassifiable headings with an explicit label.
	FallbackUnknown
)

// Rule maps heading keywords to one canonical topic. Rules are evaluated in
// order; the first rule with a matching keyword wins, so more specific rules
// must come before more general ones ("eligibility addendum" before
// "eligibility").
type Rule struct {
	Keywords []string
	Topic    string
}

// Config is the full structuring configuration for one product line:
// the ordered canonical topic set, the ordered classification rule table,
// heading-detection signals, table attachment preference and the fallback
// policy for unclassifiable headings.
type Config struct {
	Line   ProductLine
	Topics []string
	Rules  []Rule

	Fallback     FallbackPolicy
	UnknownLabel string

	// Heading detection signals.
	HeadingKeywords     []string
	HeadingKeywordMatch MatchMode
	MaxAllCapsWords     int // all-caps lines longer than this are not headings; 0 = no limit
	ShortHeadingWords   int // short capitalized lines up to this length are headings; 0 = disabled
	TopicFirstWord      bool

	// Canonical types that tables preferentially attach to.
	TablePreferred []string
}

// ForLine returns the structuring configuration for a product line.
func ForLine(line ProductLine) (Config, error) {
	switch line {
	case LineAccount:
		return accountConfig, nil
	case LineCreditCard:
		return creditCardConfig, nil
	default:
		return Config{}, fmt.Errorf("no taxonomy for product line %q", line)
	}
}

// IsHeading reports whether a line of text is a section heading. Signals are
// tested in order until one fires; a line matching none is body text.
func (c Config) IsHeading(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	words := len(strings.Fields(t))

	if allUpper(t) && (c.MaxAllCapsWords == 0 || words <= c.MaxAllCapsWords) {
		return true
	}
	if strings.HasSuffix(t, ":") {
		return true
	}
	if c.ShortHeadingWords > 0 && words <= c.ShortHeadingWords {
		if r := []rune(t)[0]; unicode.IsUpper(r) {
			return true
		}
	}

	lower := strings.ToLower(t)
	if c.TopicFirstWord {
		for _, topic := range c.Topics {
			first := strings.ToLower(strings.Fields(topic)[0])
			if strings.Contains(lower, first) {
				return true
			}
		}
	}
	for _, k := range c.HeadingKeywords {
		switch c.HeadingKeywordMatch {
		case MatchPrefix:
			if strings.HasPrefix(lower, k) {
				return true
			}
		default:
			if strings.Contains(lower, k) {
				return true
			}
		}
	}
	return false
}

// Classify maps a heading to its canonical topic by testing the ordered rule
// table; the first matching rule wins. Unmatched headings degrade to the
// configured fallback rather than erroring.
func (c Config) Classify(heading string) string {
	t := strings.ToLower(strings.TrimSpace(heading))
	for _, rule := range c.Rules {
		for _, k := range rule.Keywords {
			if strings.Contains(t, k) {
				return rule.Topic
			}
		}
	}
	if c.Fallback == FallbackUnknown {
		return c.UnknownLabel
	}
	return titleCase(strings.TrimSpace(heading))
}

// IsCanonical reports whether a section type is a member of the taxonomy.
func (c Config) IsCanonical(sectionType string) bool {
	for _, topic := range c.Topics {
		if topic == sectionType {
			return true
		}
	}
	return false
}

// IsTablePreferred reports whether tables should preferentially attach to
// sections of this canonical type.
func (c Config) IsTablePreferred(sectionType string) bool {
	for _, t := range c.TablePreferred {
		if t == sectionType {
			return true
		}
	}
	return false
}

// allUpper reports whether the string has at least one letter and no
// lower-case letters.
func allUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// titleCase upper-cases the first letter of each word and lower-cases the
// rest ("SERVICE charges" -> "Service Charges").
func titleCase(s string) string {
	var b strings.Builder
	startWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startWord = true
			b.WriteRune(r)
		case startWord:
			b.WriteRune(unicode.ToUpper(r))
			startWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
