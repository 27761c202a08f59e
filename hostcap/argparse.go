package hostcap

import (
	"flag"
	"io"
	"strings"

	"github.com/wippyai/checkdenormal/errors"
)

// Option declares one long-form option understood by a backend.
type Option struct {
	Name string // without leading dashes
	Key  int
	Doc  string

	// HasArg marks options that take a value. Options without one are
	// plain switches.
	HasArg bool
}

// ArgParser is the host's argument-parsing engine. Parse must either accept
// every token in args or return an error without calling handle at all.
type ArgParser interface {
	Parse(options []Option, args []string, handle func(key int, arg string) error) error
}

// FlagParser implements ArgParser on top of a flag.FlagSet. Both -name and
// --name spellings are accepted.
type FlagParser struct {
	Name string
}

type parsedOption struct {
	key int
	arg string
}

func (p FlagParser) Parse(options []Option, args []string, handle func(key int, arg string) error) error {
	fs := flag.NewFlagSet(p.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := rejectSwitchValues(options, args); err != nil {
		return err
	}

	var parsed []parsedOption
	for _, opt := range options {
		key := opt.Key
		name := opt.Name
		if opt.HasArg {
			fs.Func(name, opt.Doc, func(v string) error {
				parsed = append(parsed, parsedOption{key: key, arg: v})
				return nil
			})
			continue
		}
		fs.BoolFunc(name, opt.Doc, func(string) error {
			parsed = append(parsed, parsedOption{key: key})
			return nil
		})
	}

	if err := fs.Parse(args); err != nil {
		return cliError(err)
	}
	if fs.NArg() > 0 {
		return errors.UnknownOption(fs.Arg(0))
	}

	for _, po := range parsed {
		if err := handle(po.key, po.arg); err != nil {
			return err
		}
	}
	return nil
}

// rejectSwitchValues fails on name=value spellings of options that take no
// argument. flag would otherwise accept --name=true.
func rejectSwitchValues(options []Option, args []string) error {
	byName := make(map[string]Option, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}

	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || !strings.HasPrefix(a, "-") {
			return nil
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		opt, known := byName[name]
		switch {
		case !known:
		case hasValue && !opt.HasArg:
			return errors.New(errors.PhaseCLI, errors.KindInvalidInput).
				Option(a).
				Detail("--%s takes no argument", name).
				Build()
		case !hasValue && opt.HasArg:
			i++ // the option's value
		}
	}
	return nil
}

func cliError(err error) error {
	if err == flag.ErrHelp {
		return errors.UnknownOption("-help")
	}
	if name, ok := strings.CutPrefix(err.Error(), "flag provided but not defined: "); ok {
		e := errors.UnknownOption(name)
		e.Cause = err
		return e
	}
	return errors.Wrap(errors.PhaseCLI, errors.KindInvalidInput, err, "invalid option value")
}
