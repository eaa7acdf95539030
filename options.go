package json

import "github.com/sdkrystian/json/storage"

// DefaultMaxDepth is the default nesting limit applied by Parse.
const DefaultMaxDepth = 64

type parseOptions struct {
	sp       storage.Handle
	maxDepth int
}

// ParseOption configures Parse and ParseBytes.
type ParseOption func(*parseOptions)

// WithStorage binds the parsed document to sp. Every node of the resulting
// tree allocates from it, so a document parsed into an arena handle lives in
// that arena and is released with it. The default is the process-wide
// default storage.
func WithStorage(sp storage.Handle) ParseOption {
	return func(o *parseOptions) { o.sp = sp }
}

// WithMaxDepth overrides the nesting limit. Documents nested deeper than n
// fail with a SyntaxError.
func WithMaxDepth(n int) ParseOption {
	return func(o *parseOptions) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}
