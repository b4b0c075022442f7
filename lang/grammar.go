package lang

import (
	"log/slog"
	"slices"
)

// parser recognizes a production starting at token index i. On success it
// returns the production's value and the index following it. On failure it
// returns ok=false and records what it expected in the state.
type parser[T any] func(st *state, i int) (v T, next int, ok bool)

// state is the mutable bookkeeping of a single parse. A new state is created
// for every call, so concurrent parses share nothing.
type state struct {
	tokens []Token
	end    Position // position just past the last byte of input

	maxDepth int
	depth    int

	// farthest failure seen so far, used to report syntax errors
	far      int
	expected []string

	// err is a failure that no alternative can recover from. Once set, every
	// parser fails immediately.
	err error
}

func newState(tokens []Token, end Position, maxDepth int) *state {
	return &state{tokens: tokens, end: end, maxDepth: maxDepth, far: -1}
}

func (st *state) peek(i int, kind Kind) bool {
	return i < len(st.tokens) && st.tokens[i].Kind == kind
}

// fail records that the token at index i is not what want describes.
func (st *state) fail(i int, want string) {
	switch {
	case i > st.far:
		st.far = i
		st.expected = append(st.expected[:0], want)

	case i == st.far && !slices.Contains(st.expected, want):
		st.expected = append(st.expected, want)
	}
}

func (st *state) abort(err error) {
	if st.err == nil {
		st.err = err
	}
}

func (st *state) position(i int) Position {
	if i < len(st.tokens) {
		return st.tokens[i].Pos
	}

	return st.end
}

// result converts the final state of a failed parse into an error.
func (st *state) result(source string) error {
	if st.err != nil {
		return st.err
	}

	far := max(st.far, 0)

	serr := &SyntaxError{
		Pos:      st.position(far),
		Expected: slices.Clone(st.expected),
		Source:   source,
	}

	if far < len(st.tokens) {
		found := st.tokens[far]
		serr.Found = &found
	}

	return serr
}

// Combinators

func tok(kind Kind) parser[Token] {
	want := kind.String()

	return func(st *state, i int) (Token, int, bool) {
		if st.err == nil && st.peek(i, kind) {
			return st.tokens[i], i + 1, true
		}

		st.fail(i, want)

		return Token{}, i, false
	}
}

const endOfInput = "end of input"

func eof() parser[struct{}] {
	return func(st *state, i int) (struct{}, int, bool) {
		if st.err == nil && i == len(st.tokens) {
			return struct{}{}, i, true
		}

		st.fail(i, endOfInput)

		return struct{}{}, i, false
	}
}

// alt tries each parser in order from the same position and returns the first
// success.
func alt[T any](ps ...parser[T]) parser[T] {
	return func(st *state, i int) (T, int, bool) {
		for _, p := range ps {
			if v, next, ok := p(st, i); ok {
				return v, next, true
			}

			if st.err != nil {
				break
			}
		}

		var zero T

		return zero, i, false
	}
}

// many applies p until it fails and collects the results. It fails only when
// the parse was aborted.
func many[T any](p parser[T]) parser[[]T] {
	return func(st *state, i int) ([]T, int, bool) {
		var out []T

		for {
			v, next, ok := p(st, i)
			if !ok {
				return out, i, st.err == nil
			}

			out = append(out, v)
			i = next
		}
	}
}

type pair[A, B any] struct {
	first  A
	second B
}

func seq[A, B any](pa parser[A], pb parser[B]) parser[pair[A, B]] {
	return func(st *state, i int) (pair[A, B], int, bool) {
		a, next, ok := pa(st, i)
		if !ok {
			return pair[A, B]{}, i, false
		}

		b, next, ok := pb(st, next)
		if !ok {
			return pair[A, B]{}, i, false
		}

		return pair[A, B]{a, b}, next, true
	}
}

// right runs pa then pb and keeps only the result of pb.
func right[A, B any](pa parser[A], pb parser[B]) parser[B] {
	return apply(seq(pa, pb), func(p pair[A, B]) (B, error) { return p.second, nil })
}

// left runs pa then pb and keeps only the result of pa.
func left[A, B any](pa parser[A], pb parser[B]) parser[A] {
	return apply(seq(pa, pb), func(p pair[A, B]) (A, error) { return p.first, nil })
}

// apply maps the result of p. An error from f aborts the parse.
func apply[A, B any](p parser[A], f func(A) (B, error)) parser[B] {
	return func(st *state, i int) (B, int, bool) {
		var zero B

		a, next, ok := p(st, i)
		if !ok {
			return zero, i, false
		}

		b, err := f(a)
		if err != nil {
			st.abort(err)

			return zero, i, false
		}

		return b, next, true
	}
}

// braced parses '{' p '}', counting one level of nesting while inside.
func braced[T any](p parser[T]) parser[T] {
	open, body := tok(KindOpenBrace), left(p, tok(KindCloseBrace))

	return func(st *state, i int) (T, int, bool) {
		var zero T

		lb, next, ok := open(st, i)
		if !ok {
			return zero, i, false
		}

		st.depth++
		defer func() { st.depth-- }()

		if st.maxDepth > 0 && st.depth > st.maxDepth {
			st.abort(ErrMaxDepthExceeded.With(
				slog.Int("max_depth", st.maxDepth),
				slog.Any("position", lb.Pos),
			))

			return zero, i, false
		}

		v, next, ok := body(st, next)
		if !ok {
			return zero, i, false
		}

		return v, next, true
	}
}

// ref defers to whatever parser *p holds when it runs, which lets productions
// refer to each other recursively.
func ref[T any](p *parser[T]) parser[T] {
	return func(st *state, i int) (T, int, bool) { return (*p)(st, i) }
}

func upcast[T Value](p parser[T]) parser[Value] {
	return apply(p, func(v T) (Value, error) { return v, nil })
}

// grammar holds the productions of the language, wired for one strategy.
type grammar struct {
	primitive parser[Primitive]
	value     parser[Value]
	variable  parser[Variable]
	set       parser[Value] // a Set, or an empty Array for "{ }"
	array     parser[Array]
	scope     parser[Scope]
	program   parser[*Program]
}

func newGrammar(strategy Strategy) *grammar {
	g := new(grammar)

	g.primitive = apply(
		alt(tok(KindNumber), tok(KindHexColor), tok(KindString), tok(KindAny)),
		classifyToken,
	)

	g.variable = apply(
		seq(tok(KindAny), right(tok(KindEquals), ref(&g.value))),
		func(p pair[Token, Value]) (Variable, error) {
			return Variable{Name: p.first.Text, Value: p.second}, nil
		},
	)

	g.set = apply(braced(many(g.variable)), collapseSet)

	g.array = apply(braced(many(g.primitive)), func(ps []Primitive) (Array, error) {
		return Array{Values: ps}, nil
	})

	switch strategy {
	case Predictive:
		g.value = g.predictValue

	default:
		g.value = alt(g.set, upcast(g.array), upcast(g.primitive))
	}

	g.scope = apply(
		seq(tok(KindScope), right(tok(KindEquals), braced(many(g.variable)))),
		func(p pair[Token, []Variable]) (Scope, error) {
			return Scope{Name: p.first.Text, Variables: p.second}, nil
		},
	)

	g.program = apply(left(many(g.scope), eof()), func(ss []Scope) (*Program, error) {
		return &Program{Scopes: ss}, nil
	})

	return g
}

// predictValue chooses the branch of a value by looking at most three tokens
// ahead instead of trying each alternative in turn:
//
//	'{' '}'              empty array
//	'{' identifier '='   set
//	'{' ...              array
//	...                  primitive
func (g *grammar) predictValue(st *state, i int) (Value, int, bool) {
	if !st.peek(i, KindOpenBrace) {
		st.fail(i, KindOpenBrace.String())

		if v, next, ok := g.primitive(st, i); ok {
			return v, next, true
		}

		return nil, i, false
	}

	if st.peek(i+1, KindAny) && st.peek(i+2, KindEquals) {
		return g.set(st, i)
	}

	if v, next, ok := g.array(st, i); ok {
		return v, next, true
	}

	return nil, i, false
}

func collapseSet(vars []Variable) (Value, error) {
	if len(vars) == 0 {
		return Array{}, nil
	}

	return Set{Variables: vars}, nil
}

func classifyToken(t Token) (Primitive, error) {
	p, err := Classify(t.Text)
	if err != nil {
		return Primitive{}, WrapError(err).With(slog.Any("position", t.Pos))
	}

	return p, nil
}

// complete requires p to consume every token.
func complete[T any](p parser[T]) parser[T] {
	return left(p, eof())
}

// run parses tokens with p and reports the farthest failure as an error.
func run[T any](p parser[T], tokens []Token, source string, maxDepth int) (T, error) {
	st := newState(tokens, advance(Position{Line: 1, Column: 1}, source), maxDepth)

	v, _, ok := p(st, 0)
	if !ok || st.err != nil {
		var zero T

		return zero, st.result(source)
	}

	return v, nil
}
