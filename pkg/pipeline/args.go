package pipeline

import (
	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/siunit"
)

// StageArgs holds the positional arguments of a stage request as typed by
// the user: SI-suffixed numbers such as "1k" or "4.7n".
type StageArgs struct {
	Frequency string
	Gain      string
	Q         string
	R1        string
}

// ParseStageArgs parses "f0 H0 Q [R1]" into the design fields of Options.
// R1 defaults to filter.DefaultR1; an explicit R1 is kept even when it is
// invalid so that validation can reject it.
func ParseStageArgs(args []string) (Options, error) {
	if len(args) < 3 || len(args) > 4 {
		return Options{}, errors.New(errors.ErrCodeInvalidParameter,
			"expected f0 H0 Q [R1], got %d arguments", len(args))
	}
	sa := StageArgs{Frequency: args[0], Gain: args[1], Q: args[2]}
	if len(args) == 4 {
		sa.R1 = args[3]
	}
	return sa.Options()
}

// Options converts the arguments to stage-mode Options.
func (a StageArgs) Options() (Options, error) {
	opts := NewOptions()
	opts.Mode = ModeStage
	var err error
	if opts.Frequency, err = siunit.ParseWithUnit(a.Frequency, "Hz"); err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidValue, err, "f0 %q", a.Frequency)
	}
	if opts.Gain, err = siunit.Parse(a.Gain); err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidValue, err, "H0 %q", a.Gain)
	}
	if opts.Q, err = siunit.Parse(a.Q); err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidValue, err, "Q %q", a.Q)
	}
	if a.R1 != "" {
		if opts.R1, err = siunit.ParseWithUnit(a.R1, "ohm"); err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidValue, err, "R1 %q", a.R1)
		}
	}
	return opts, nil
}
