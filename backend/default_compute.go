//go:build !checkdenormal_checkonly

package backend

import "github.com/wippyai/checkdenormal"

// DefaultMode is the dispatch build Init returns.
const DefaultMode = ModeCompute

// Init builds the compute-and-check descriptor for ctx.
func (b *Backend) Init(ctx *checkdenormal.Context) Descriptor {
	return b.InitCompute(ctx)
}
