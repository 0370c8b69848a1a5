// Package interceptor routes business return codes through an ordered,
// first-match set of rules. A rule that handles a code owns what the user sees
// for it; the caller suppresses its default error UI.
package interceptor

import (
	"context"

	"github.com/Goden-Gun/httpcall-lib/pkg/codes"
	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
	"github.com/Goden-Gun/httpcall-lib/pkg/viewchange"
)

// Rule decides whether it applies to a return code and, if so, handles it.
type Rule interface {
	Applies(code codes.ReturnCode) bool
	Handle(ctx context.Context, code codes.ReturnCode, message string, emit viewchange.Emitter)
}

// HandlerFunc is the handling half of a rule.
type HandlerFunc func(ctx context.Context, code codes.ReturnCode, message string, emit viewchange.Emitter)

// RuleFunc builds a Rule from a predicate and a handler.
func RuleFunc(applies func(codes.ReturnCode) bool, handle HandlerFunc) Rule {
	return &funcRule{applies: applies, handle: handle}
}

type funcRule struct {
	applies func(codes.ReturnCode) bool
	handle  HandlerFunc
}

func (r *funcRule) Applies(code codes.ReturnCode) bool {
	return r.applies != nil && r.applies(code)
}

func (r *funcRule) Handle(ctx context.Context, code codes.ReturnCode, message string, emit viewchange.Emitter) {
	if r.handle != nil {
		r.handle(ctx, code, message, emit)
	}
}

// CodeRule applies to a fixed set of return codes.
func CodeRule(handle HandlerFunc, list ...string) Rule {
	set := codes.NewSet(list...)
	return &funcRule{applies: set.Has, handle: handle}
}

// ToastRule shows the server message as a Toast for the listed codes.
func ToastRule(list ...string) Rule {
	return CodeRule(func(_ context.Context, _ codes.ReturnCode, message string, emit viewchange.Emitter) {
		viewchange.OrDiscard(emit).Emit(viewchange.Toast(message))
	}, list...)
}

// Chain is an ordered rule list. It is immutable after NewChain and safe for
// concurrent use.
type Chain struct {
	rules []Rule
}

// NewChain copies rules in evaluation order. Nil rules are skipped.
func NewChain(rules ...Rule) *Chain {
	c := &Chain{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if r != nil {
			c.rules = append(c.rules, r)
		}
	}
	return c
}

// With returns a new chain with rules appended after the existing ones.
func (c *Chain) With(rules ...Rule) *Chain {
	all := make([]Rule, 0, c.Len()+len(rules))
	if c != nil {
		all = append(all, c.rules...)
	}
	all = append(all, rules...)
	return NewChain(all...)
}

// Len returns the number of rules.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

// Route hands code to the first applicable rule and reports whether one
// handled it.
func (c *Chain) Route(ctx context.Context, code codes.ReturnCode, message string, emit viewchange.Emitter) bool {
	if c == nil {
		return false
	}
	emit = viewchange.OrDiscard(emit)
	for i, r := range c.rules {
		if !r.Applies(code) {
			continue
		}
		log.WithTrace(ctx).WithFields(log.Fields{
			"return_code": code.String(),
			"rule":        i,
		}).Debug("return code intercepted")
		r.Handle(ctx, code, message, emit)
		return true
	}
	return false
}
