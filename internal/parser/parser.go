package parser

import "psr/internal/domain"

// Parser normalizes a raw test entry into a canonical result
type Parser interface {
	ParseTest(test domain.RawTest) domain.Result
}
