package cepac

// Sentinel format strings for the error classes described in the error
// handling design: fatal-config, missing-optional, and invariant
// violations. Each is wrapped with github.com/pkg/errors at the call site
// to attach a stack and a short description of what was being attempted.
const (
	// InputVersionMismatchError is fatal: the .in/.toml file's
	// inputVersion token does not match the engine's expected version.
	InputVersionMismatchError = "input version %s does not match expected version %s"

	// UnreadableInputError is fatal: the input file could not be opened.
	UnreadableInputError = "cannot read input file %q"

	// UnparsableFieldError is fatal: a mandatory field could not be
	// parsed into its expected type.
	UnparsableFieldError = "cannot parse mandatory field %q: %s"

	// MissingKeyError is fatal: a mandatory key is absent from its keyed
	// section, or has fewer tokens than requested.
	MissingKeyError = "missing mandatory key %q in section %q"

	// UnrecognizedKeywordError mirrors the teacher's own message for an
	// out-of-enum string field.
	UnrecognizedKeywordError = "%q is not a recognized value for %q"

	// InvalidFloatParameterError flags an out-of-bounds numeric field.
	InvalidFloatParameterError = "invalid %s %f: %s"

	// InvalidIntParameterError flags an out-of-bounds integer field.
	InvalidIntParameterError = "invalid %s %d: %s"

	// OutOfDiskError is fatal and reported verbatim to the CLI.
	OutOfDiskError = "cannot write output %q: out of disk space"

	// FileParsingError reports the line at which a keyed-section parse
	// failed.
	FileParsingError = "parse error at line %d: %s"

	// UnknownUpdaterError should never fire; it guards the static
	// pipeline table against a programmer typo.
	UnknownUpdaterError = "no updater registered for step %q"

	// UnequalFloatParameterError, UnequalIntParameterError and
	// UnequalStringParameterError are test-only assertion messages,
	// mirroring the teacher's own errors.go constants of the same name.
	UnequalFloatParameterError  = "expected %s %f, instead got %f"
	UnequalIntParameterError    = "expected %s %d, instead got %d"
	UnequalStringParameterError = "expected %s %s, instead got %s"

	// UnexpectedErrorWhileError is the test-only message for an
	// unexpected error or a failed check.
	UnexpectedErrorWhileError = "encountered error while %s: %s"
)
