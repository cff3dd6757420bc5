package exptree

import (
	"log/slog"
	"strconv"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	depthopt int
	traceopt struct {
		log *slog.Logger
	}
)

// parsectx holds general settings for parsing. It is also a ParseOption.
type parsectx struct {
	// maxdepth is the maximum nesting of expressions, or 0 for no limit.
	maxdepth int
	// log receives backtracking events at debug level, if non-nil.
	log *slog.Logger
}

// MaxDepth limits how deeply expressions may nest. Each parenthesized group
// and each additive operator in a chain opens one level. Parsing an input
// that exceeds the limit fails with a *DepthError. Zero means no limit, which
// is the default.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		panic("exptree: negative max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}

// Trace logs the parser's decisions to l at debug level: every abandoned
// alternative and every operator node it commits to. A nil logger disables
// tracing.
func Trace(l *slog.Logger) ParseOption {
	return traceopt{l}
}

func (o traceopt) parseOption(p parsectx) parsectx {
	p.log = o.log
	return p
}

// ParsingPreset combines options into one, for reuse across many calls to
// Parse. Options applied after a preset override it.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	return *o
}
