package engine

import (
	"context"
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"
)

func isUnicodeUpper(r rune) bool {
	return unicode.IsUpper(r)
}

func isUnicodeLower(r rune) bool {
	return unicode.IsLower(r)
}

// DocId is a dense document identifier assigned by the feed in
// monotonically non-decreasing order during a single build. 0 is
// reserved and never assigned.
type DocId uint32

// FieldId is a field identifier in [1, F]. 0 means "no field / any
// field" and is never stored in a posting.
type FieldId uint32

// NoField is the sentinel FieldId meaning "no field / any field".
const NoField FieldId = 0

// TermKind is a tagged variant, not a bitfield, per the design notes:
// the on-disk byte uses a fixed mapping to one of these four values.
type TermKind uint8

const (
	TermUnknown TermKind = iota
	TermRegular
	TermStop
	TermFrequent
)

func (k TermKind) String() string {
	switch k {
	case TermRegular:
		return "Regular"
	case TermStop:
		return "Stop"
	case TermFrequent:
		return "Frequent"
	default:
		return "Unknown"
	}
}

// Posting is a decoded posting tuple, the unit the postings engine (C6)
// operates on. TermWeight is optional and caller-attached; the engine
// preserves it through merges but never modifies it.
type Posting struct {
	DocId      DocId
	Position   uint32
	FieldId    FieldId
	TermWeight float64
	HasWeight  bool
}

// FieldOptions is the per-field metadata read from the external info
// store at build time (§6.4 Info store trait).
type FieldOptions struct {
	Stemming        bool
	HonorStopList   bool
	IncludeInCounts bool
	UnfieldedDefault bool
}

// ValidateTerm enforces the length bound in §3: truncate to Lmax on a
// UTF-8 codepoint boundary, never inside a codepoint; drop (return
// ok=false) if the resulting term is shorter than Lmin.
//
// term is assumed to be valid UTF-8; truncation uses utf8.RuneStart and
// backs up past any continuation byte (0x80–0xBF) at the cut.
func ValidateTerm(term string, lmin, lmax int) (out string, ok bool) {
	if len(term) > lmax {
		term = truncateToCodepointBoundary(term, lmax)
	}
	if len(term) < lmin {
		return "", false
	}
	return term, true
}

// truncateToCodepointBoundary returns the longest prefix of s with byte
// length <= max that ends on a rune boundary.
func truncateToCodepointBoundary(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// CasePolicy classifies a token per §4.1 step 2.
type CasePolicy uint8

const (
	CaseLowerOnly CasePolicy = iota
	CaseUpperOnly
	CaseMixed
)

// ClassifyCase implements the case policy classification of §4.1: a
// token with no letters at all is treated as LowerOnly (nothing to
// case-fold), a token where every letter is uppercase is UpperOnly, a
// token where every letter is lowercase is LowerOnly, anything else is
// Mixed.
func ClassifyCase(token string) CasePolicy {
	sawUpper, sawLower := false, false
	for _, r := range token {
		if 'A' <= r && r <= 'Z' {
			sawUpper = true
			continue
		}
		if 'a' <= r && r <= 'z' {
			sawLower = true
			continue
		}
		// Non-ASCII letters: fold through unicode case checks lazily
		// only when ASCII didn't already decide, to keep the common
		// path branch-light.
		if isUnicodeUpper(r) {
			sawUpper = true
		} else if isUnicodeLower(r) {
			sawLower = true
		}
	}
	switch {
	case sawUpper && sawLower:
		return CaseMixed
	case sawUpper:
		return CaseUpperOnly
	default:
		return CaseLowerOnly
	}
}

// BuildContext is threaded explicitly through every build-side API
// instead of relying on process-wide logging/cancellation state (see
// design note "No global mutable state" — a deliberate departure from
// the teacher's use of the default slog handler).
type BuildContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config Config
}

// ReadContext is the read-side analogue of BuildContext.
type ReadContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config Config
}

// NewBuildContext returns a BuildContext with a background context and
// slog.Default() as the logger if logger is nil.
func NewBuildContext(cfg Config, logger *slog.Logger) *BuildContext {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Normalize()
	return &BuildContext{Ctx: context.Background(), Logger: logger, Config: cfg}
}

// NewReadContext returns a ReadContext with a background context and
// slog.Default() as the logger if logger is nil.
func NewReadContext(cfg Config, logger *slog.Logger) *ReadContext {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.Normalize()
	return &ReadContext{Ctx: context.Background(), Logger: logger, Config: cfg}
}

// wrapIo wraps an underlying I/O error with ErrIo per §7's propagation
// policy (typed sentinel, context attached with fmt.Errorf %w).
func wrapIo(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrIo, err)
}

// wrapCorrupt wraps a detected invariant violation with ErrCorrupt.
func wrapCorrupt(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrCorrupt, err)
}
