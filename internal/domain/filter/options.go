// Package filter turns raw request parameters into typed query inputs.
package filter

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithStrict toggles rejection of malformed parameters.
// When false, values are passed through to the query unchanged.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}
