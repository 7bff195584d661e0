package api

import (
	"github.com/okian/foodie/internal/domain/filter"
	"github.com/okian/foodie/pkg/logger"
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithParser sets the request parameter parser. Defaults to a strict parser.
func WithParser(p *filter.Parser) Option {
	return func(s *Server) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithLogger sets the logger used for access logs and handler failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
