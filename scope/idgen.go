package scope

import (
	"fmt"
	"sync/atomic"
)

// IDGen is the unique-id supplier of spec.md §6: "the adapter's supplier"
// that every generated name (loop object, loop-object property, renamed
// binding) embeds, making the name globally unique across one pass run
// (spec.md §5: "every generated name embeds an id, so names are globally
// unique across invocations"). Grounded on design notes §9: "an externally
// supplied monotonically increasing sequence; the core never reads clocks
// or random sources."
type IDGen struct {
	// Prefix, when non-empty, is embedded in every name built via Name
	// alongside the numeric id (config.Config.NameBlocks: typically a
	// file's base name, for telling generated names apart across files in
	// a batch run).
	Prefix string

	n atomic.Uint64
}

// NewIDGen returns an IDGen starting at 0 with no prefix; the first call
// to Next returns 1.
func NewIDGen() *IDGen { return &IDGen{} }

// Next returns the next id in the sequence. Safe for concurrent use,
// though the pass itself is single-threaded (spec.md §5).
func (g *IDGen) Next() uint64 { return g.n.Add(1) }

// Name builds a generated name of the form "<base>$<id>", or
// "<base>$<prefix>$<id>" when Prefix is set, consuming one id from the
// sequence.
func (g *IDGen) Name(base string) string {
	if g.Prefix == "" {
		return fmt.Sprintf("%s$%d", base, g.Next())
	}
	return fmt.Sprintf("%s$%s$%d", base, g.Prefix, g.Next())
}
