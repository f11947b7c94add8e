package docxflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

// Condition is a predicate over a document element. A condition never fails:
// anything it cannot evaluate does not match.
type Condition interface {
	Check(el xml.Element) bool
}

// scope carries the editor settings conditions and actions run under when a
// Selector drives them.
type scope struct {
	logger         *Logger
	patternTimeout time.Duration
}

func defaultScope() scope {
	return scope{logger: GetLogger(), patternTimeout: DefaultConfig().PatternTimeout}
}

// scopedCondition is implemented by conditions that log or depend on editor
// settings.
type scopedCondition interface {
	checkIn(sc scope, el xml.Element) bool
}

func checkIn(sc scope, c Condition, el xml.Element) bool {
	if scoped, ok := c.(scopedCondition); ok {
		return scoped.checkIn(sc, el)
	}
	return c.Check(el)
}

// PatternCondition matches paragraphs whose text contains a match of a
// regular expression anywhere. Unless WithPatternTimeout is given, a match
// run through a Selector is bounded by the editor's Config.PatternTimeout.
type PatternCondition struct {
	source  string
	re      *regexp2.Regexp
	timeout time.Duration
	fixed   bool
	scoped  map[time.Duration]*regexp2.Regexp // by editor timeout
}

// PatternOption configures a PatternCondition.
type PatternOption func(*PatternCondition)

// WithPatternTimeout bounds a single match. Zero disables the bound.
func WithPatternTimeout(d time.Duration) PatternOption {
	return func(c *PatternCondition) {
		c.timeout = d
		c.fixed = true
	}
}

func setMatchTimeout(re *regexp2.Regexp, d time.Duration) {
	if d > 0 {
		re.MatchTimeout = d
	} else {
		re.MatchTimeout = regexp2.DefaultMatchTimeout
	}
}

func compilePattern(pattern string) (*regexp2.Regexp, error) {
	return regexp2.Compile(norm.NFC.String(pattern), regexp2.None)
}

// NewPatternCondition compiles pattern. Both the pattern and the paragraph
// text are compared in NFC form.
func NewPatternCondition(pattern string, opts ...PatternOption) (*PatternCondition, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, NewValidationError("pattern", fmt.Sprintf("invalid pattern %q: %v", pattern, err))
	}
	c := &PatternCondition{source: pattern, re: re, timeout: DefaultConfig().PatternTimeout}
	for _, opt := range opts {
		opt(c)
	}
	setMatchTimeout(re, c.timeout)
	return c, nil
}

// MustPattern is like NewPatternCondition but panics on an invalid pattern.
func MustPattern(pattern string, opts ...PatternOption) *PatternCondition {
	c, err := NewPatternCondition(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the pattern source.
func (c *PatternCondition) String() string {
	return c.source
}

func (c *PatternCondition) Check(el xml.Element) bool {
	return c.checkIn(defaultScope(), el)
}

func (c *PatternCondition) checkIn(sc scope, el xml.Element) bool {
	p, ok := el.(*xml.Paragraph)
	if !ok {
		return false
	}
	matched, err := c.regexpFor(c.effectiveTimeout(sc)).MatchString(norm.NFC.String(p.Text()))
	if err != nil {
		sc.logger.Debug("pattern %q not evaluated: %v", c.source, err)
		return false
	}
	return matched
}

func (c *PatternCondition) effectiveTimeout(sc scope) time.Duration {
	if c.fixed {
		return c.timeout
	}
	return sc.patternTimeout
}

func (c *PatternCondition) regexpFor(d time.Duration) *regexp2.Regexp {
	if d == c.timeout {
		return c.re
	}
	if re, ok := c.scoped[d]; ok {
		return re
	}
	// The source compiled in NewPatternCondition.
	re, _ := compilePattern(c.source)
	setMatchTimeout(re, d)
	if c.scoped == nil {
		c.scoped = make(map[time.Duration]*regexp2.Regexp)
	}
	c.scoped[d] = re
	return re
}

// ColumnCountCondition matches tables with exactly N grid columns.
type ColumnCountCondition struct {
	N int
}

// NewColumnCountCondition returns a condition matching tables with n columns.
func NewColumnCountCondition(n int) *ColumnCountCondition {
	return &ColumnCountCondition{N: n}
}

func (c *ColumnCountCondition) Check(el xml.Element) bool {
	t, ok := el.(*xml.Table)
	return ok && t.ColumnCount() == c.N
}

// TableTextCondition matches tables with a cell paragraph containing Text.
type TableTextCondition struct {
	Text string
}

// NewTableTextCondition returns a condition matching tables containing text.
func NewTableTextCondition(text string) *TableTextCondition {
	return &TableTextCondition{Text: text}
}

func (c *TableTextCondition) Check(el xml.Element) bool {
	t, ok := el.(*xml.Table)
	if !ok {
		return false
	}
	needle := norm.NFC.String(c.Text)
	for _, cell := range t.Cells() {
		for _, p := range cell.Paragraphs() {
			if strings.Contains(norm.NFC.String(p.Text()), needle) {
				return true
			}
		}
	}
	return false
}

// FuncCondition adapts a caller predicate. A panicking predicate does not
// match.
type FuncCondition struct {
	fn func(xml.Element) bool
}

// NewFuncCondition wraps fn.
func NewFuncCondition(fn func(xml.Element) bool) *FuncCondition {
	return &FuncCondition{fn: fn}
}

func (c *FuncCondition) Check(el xml.Element) bool {
	return c.checkIn(defaultScope(), el)
}

func (c *FuncCondition) checkIn(sc scope, el xml.Element) (matched bool) {
	if c.fn == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			sc.logger.Debug("condition predicate failed: %v", RecoverError(r))
			matched = false
		}
	}()
	return c.fn(el)
}

type notCondition struct{ c Condition }

func (n notCondition) Check(el xml.Element) bool { return n.checkIn(defaultScope(), el) }

func (n notCondition) checkIn(sc scope, el xml.Element) bool { return !checkIn(sc, n.c, el) }

// Not inverts c.
func Not(c Condition) Condition {
	return notCondition{c: c}
}

type allCondition []Condition

func (a allCondition) Check(el xml.Element) bool { return a.checkIn(defaultScope(), el) }

func (a allCondition) checkIn(sc scope, el xml.Element) bool {
	for _, c := range a {
		if !checkIn(sc, c, el) {
			return false
		}
	}
	return true
}

// All matches when every condition matches. All() matches everything.
func All(conds ...Condition) Condition {
	return allCondition(conds)
}

type anyCondition []Condition

func (a anyCondition) Check(el xml.Element) bool { return a.checkIn(defaultScope(), el) }

func (a anyCondition) checkIn(sc scope, el xml.Element) bool {
	for _, c := range a {
		if checkIn(sc, c, el) {
			return true
		}
	}
	return false
}

// Any matches when at least one condition matches. Any() matches nothing.
func Any(conds ...Condition) Condition {
	return anyCondition(conds)
}
