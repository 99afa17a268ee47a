package config

import (
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Filter selects blocks of a document. Condition is an expression in
// the expr language (https://expr-lang.org/docs/language-definition)
// evaluated against a [BlockEnv]; it must return a boolean.
type Filter struct {
	Condition string `yaml:"condition" toml:"condition" validate:"required"`

	once       sync.Once
	program    *vm.Program
	compileErr error
}

func NewFilter(condition string) *Filter {
	return &Filter{Condition: condition}
}

// BlockEnv is the environment a filter condition is evaluated in.
//
// The `expr` tag is used to map the field to the variable name.
// Without it, all variables start with capitalized letters.
type BlockEnv struct {
	Type     string `expr:"type"`
	Path     string `expr:"path"`
	Depth    int    `expr:"depth"`
	Text     string `expr:"text"`
	Level    int    `expr:"level"`
	Number   int    `expr:"number"`
	Checked  bool   `expr:"checked"`
	Language string `expr:"language"`
	Children int    `expr:"children"`
}

// Compile checks the condition without evaluating it.
func (f *Filter) Compile() error {
	f.once.Do(func() {
		program, err := expr.Compile(
			f.Condition,
			expr.Env(BlockEnv{}),
			expr.AsBool(),
		)
		f.program, f.compileErr = program, errors.Wrapf(err, "failed to compile filter %q", f.Condition)
	})
	return f.compileErr
}

func (f *Filter) Evaluate(env BlockEnv) (bool, error) {
	if err := f.Compile(); err != nil {
		return false, err
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, errors.Wrap(err, "failed to run filter program")
	}
	return result.(bool), nil
}

// MatchAll reports whether env satisfies every filter.
func MatchAll(filters []*Filter, env BlockEnv) (bool, error) {
	for _, f := range filters {
		ok, err := f.Evaluate(env)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
