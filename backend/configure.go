package backend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/errors"
	"github.com/wippyai/checkdenormal/hostcap"
)

const optFlushToZero = "flush-to-zero"

const (
	keyFlushToZero = iota
)

var cliOptions = []hostcap.Option{
	{Name: optFlushToZero, Key: keyFlushToZero, Doc: "enable flush-to-zero"},
}

// Options returns the options CLI understands.
func Options() []hostcap.Option {
	return append([]hostcap.Option(nil), cliOptions...)
}

// Configure overwrites ctx with conf.
func (b *Backend) Configure(conf checkdenormal.Config, ctx *checkdenormal.Context) {
	ctx.Apply(conf)
	b.markConfigured()
}

// CLI parses args with the host's argument-parsing engine. The only option is
// --flush-to-zero. Any other token is reported as an unknown-option error and
// ctx is left exactly as it was. A host without an argument-parsing engine is
// a fatal condition.
func (b *Backend) CLI(args []string, ctx *checkdenormal.Context) error {
	if b.caps.ArgParse == nil {
		b.fatal(errors.New(errors.PhaseCLI, errors.KindMissingCapability).
			Capability(string(hostcap.ArgParse)).
			Detail("argp_parse not implemented; provide an implementation or use Configure").
			Build())
	}

	staged := *ctx
	err := b.caps.ArgParse.Parse(cliOptions, args, func(key int, _ string) error {
		switch key {
		case keyFlushToZero:
			staged.FlushToZero = true
		default:
			return errors.UnknownOption(fmt.Sprintf("key %d", key))
		}
		return nil
	})
	if err != nil {
		b.log.Debug("cli rejected", zap.Strings("args", args), zap.Error(err))
		return err
	}

	*ctx = staged
	b.markConfigured()
	return nil
}

func (b *Backend) markConfigured() {
	if b.state == StateContextAllocated {
		b.state = StateConfigured
	}
}
