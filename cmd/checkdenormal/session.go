package main

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/checkdenormal"
	"github.com/wippyai/checkdenormal/backend"
	"github.com/wippyai/checkdenormal/config"
	"github.com/wippyai/checkdenormal/hostcap"
)

type options struct {
	configPath string
	checkOnly  bool
	cliArgs    []string
}

// session is one backend lifecycle with a handler that counts detections.
type session struct {
	backend *backend.Backend
	ctx     *checkdenormal.Context
	desc    backend.Descriptor
	hits    atomic.Int64
}

func newSession(opts options, log *zap.Logger) (*session, error) {
	s := &session{}

	caps := hostcap.Default()
	caps.Logger = log
	caps.DenormalHandler = func() { s.hits.Add(1) }

	s.backend = backend.New(caps)
	s.ctx = s.backend.PreInit(nil, log)

	mode := backend.DefaultMode
	if opts.configPath != "" {
		f, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		s.backend.Configure(f.Config, s.ctx)
		if len(f.Args) > 0 {
			if err := s.backend.CLI(f.Args, s.ctx); err != nil {
				return nil, err
			}
		}
		switch f.Mode {
		case config.ModeCompute:
			mode = backend.ModeCompute
		case config.ModeCheckOnly:
			mode = backend.ModeCheckOnly
		}
	}
	if opts.checkOnly {
		mode = backend.ModeCheckOnly
	}
	if len(opts.cliArgs) > 0 {
		if err := s.backend.CLI(opts.cliArgs, s.ctx); err != nil {
			return nil, err
		}
	}

	switch mode {
	case backend.DefaultMode:
		s.desc = s.backend.Init(s.ctx)
	case backend.ModeCheckOnly:
		s.desc = s.backend.InitCheckOnly(s.ctx)
	default:
		s.desc = s.backend.InitCompute(s.ctx)
	}
	return s, nil
}

// detections returns the number of denormals reported since the last call.
func (s *session) detections() int64 {
	return s.hits.Swap(0)
}

func (s *session) close() {
	s.desc.Finalize(s.ctx)
}
