package reader

import "github.com/colinmarc/ccf/codec"

type config struct {
	allocationCeiling int
}

func defaultConfig() *config {
	return &config{allocationCeiling: codec.DefaultAllocationCeiling}
}

// Option configures a Reader.
type Option func(*config)

// WithAllocationCeiling bounds the uncompressed size a ReadColumn call
// will allocate for, guarding against a corrupt or hostile header
// directory claiming an implausible uncompressed_size (spec §5).
func WithAllocationCeiling(bytes int) Option {
	return func(c *config) { c.allocationCeiling = bytes }
}
