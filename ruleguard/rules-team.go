//go:build ruleguard
// +build ruleguard

package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

// Team rules that upstream tooling won't enforce for us.
// Stdlib packages are pre-loaded in ruleguard's import table, so patterns can use:
//   strconv, os, etc.

func receiverNameMinLength(m dsl.Matcher) {
	// Enforce: receiver identifier must not be 1 character.
	isSingleChar := func(v dsl.Var) bool {
		return v.Text.Matches(`^[a-zA-Z]$`) && !v.Text.Matches(`^t$`)
	}

	m.Match(`func ($recv $recvType) $name($*args) $*results { $*_ }`).
		Where(isSingleChar(m["recv"])).
		Report(`receiver name must be a meaningful, domain-compliant name (min 2 characters); avoid single-letter receivers`)
}

func forbidIgnoringParseFloatError(m dsl.Matcher) {
	// Coverage values and thresholds must never be coerced silently.
	isBlankIdent := func(v dsl.Var) bool {
		return v.Text.Matches(`^_$`)
	}

	m.Import(`strconv`)
	m.Match(`$value, $err = strconv.ParseFloat($arg, $size)`).
		Where(isBlankIdent(m["err"])).
		Report(`must check strconv.ParseFloat error; a malformed percentage is a failure, not zero`)
	m.Match(`$value, $err := strconv.ParseFloat($arg, $size)`).
		Where(isBlankIdent(m["err"])).
		Report(`must check strconv.ParseFloat error; a malformed percentage is a failure, not zero`)
}

func forbidDirectOsExit(m dsl.Matcher) {
	// Exit codes flow back through Execute.
	m.Match(`os.Exit($code)`).
		Where(!m.File().Name.Matches(`^main\.go$`)).
		Report(`return an exit code instead of calling os.Exit outside main`)
}
