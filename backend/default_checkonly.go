//go:build checkdenormal_checkonly

package backend

import "github.com/wippyai/checkdenormal"

// DefaultMode is the dispatch build Init returns.
const DefaultMode = ModeCheckOnly

// Init builds the check-only descriptor for ctx.
func (b *Backend) Init(ctx *checkdenormal.Context) Descriptor {
	return b.InitCheckOnly(ctx)
}
