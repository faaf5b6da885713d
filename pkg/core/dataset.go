package core

import "context"

// Dataset provides a stream of labeled samples.
type Dataset interface {
	Name() string
	Len(ctx context.Context) (int, error)
	Samples(ctx context.Context) (<-chan Sample, <-chan error)
}
