package optset

import (
	"errors"
	"os"
	"reflect"
)

// ExitError requests a specific exit code from application code
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeDefaults holds common default codes.
type ExitCodeDefaults struct {
	Success       int // default: 0
	GeneralError  int // default: 1
	MisusageError int // default: 2
	ConfigError   int // default: 70 (EX_SOFTWARE, the option set itself is broken)
}

func defaultExitDefaults() ExitCodeDefaults {
	return ExitCodeDefaults{Success: 0, GeneralError: 1, MisusageError: 2, ConfigError: 70}
}

// ExitCodeManager maps errors to process exit codes
type ExitCodeManager struct {
	codesByType  map[reflect.Type]int
	codesByParse map[ErrorType]int
	defaults     ExitCodeDefaults
}

// NewExitCodeManager returns a manager mapping every parse error to the misuse code
func NewExitCodeManager() *ExitCodeManager {
	m := &ExitCodeManager{
		codesByType:  make(map[reflect.Type]int),
		codesByParse: make(map[ErrorType]int),
		defaults:     defaultExitDefaults(),
	}
	for _, t := range []ErrorType{
		ErrorTypeUnknownOption,
		ErrorTypeMissingValue,
		ErrorTypeValueFormat,
		ErrorTypeMissingRequired,
		ErrorTypePrecluded,
	} {
		m.codesByParse[t] = m.defaults.MisusageError
	}
	return m
}

// DefineError maps a concrete error value (by its dynamic type) to an exit code
func (e *ExitCodeManager) DefineError(err error, code int) *ExitCodeManager {
	if err == nil {
		return e
	}
	e.codesByType[reflect.TypeOf(err)] = code
	return e
}

// DefineParse overrides the exit code for one parse error category
func (e *ExitCodeManager) DefineParse(typ ErrorType, code int) *ExitCodeManager {
	e.codesByParse[typ] = code
	return e
}

// Default replaces the manager's default codes.
// Parse categories not overridden with DefineParse follow the new misuse code.
func (e *ExitCodeManager) Default(d ExitCodeDefaults) *ExitCodeManager {
	old := e.defaults.MisusageError
	for t, code := range e.codesByParse {
		if code == old {
			e.codesByParse[t] = d.MisusageError
		}
	}
	e.defaults = d
	return e
}

// Resolve converts an error to an exit code.
// Precedence:
//  1. ExitError (requested code)
//  2. ParseError category mapping (DefineParse)
//  3. ConfigError
//  4. Concrete error type mapping (DefineError)
//  5. GeneralError
func (e *ExitCodeManager) Resolve(err error) int {
	if err == nil {
		return e.defaults.Success
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		if code, ok := e.codesByParse[pe.Type]; ok {
			return code
		}
		return e.defaults.MisusageError
	}

	var ce *ConfigError
	if errors.As(err, &ce) {
		return e.defaults.ConfigError
	}

	for t, code := range e.codesByType {
		target := reflect.New(t)
		if errors.As(err, target.Interface()) {
			return code
		}
	}

	return e.defaults.GeneralError
}

// Exit terminates the process with the code for err
func (e *ExitCodeManager) Exit(err error) {
	os.Exit(e.Resolve(err))
}
