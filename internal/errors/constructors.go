package errors

import stdErrors "errors"

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrEntryNotFound = stdErrors.New("entry file not found")
	ErrEntryMissing  = stdErrors.New("entry file does not exist")
	ErrOutputIsRoot  = stdErrors.New("output directory is the project root")
)

// Entry resolution errors

func EntryNotFound(root string, candidates []string) *SpabuildError {
	return Wrap(ErrEntryNotFound, CategoryInput, SeverityFatal, "failed to locate entry file").
		WithContext("root", root).
		WithContext("candidates", candidates)
}

func EntryMissing(entry string) *SpabuildError {
	return Wrap(ErrEntryMissing, CategoryInput, SeverityFatal, "entry file does not exist").
		WithContext("entry", entry)
}

// Configuration errors

func OutputIsRoot(root string) *SpabuildError {
	return Wrap(ErrOutputIsRoot, CategoryConfig, SeverityFatal, "do not set output directory to project root").
		WithContext("root", root)
}

func ConfigInvalid(field, reason string) *SpabuildError {
	return New(CategoryConfig, SeverityFatal, "invalid project configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Build errors

func BuildFailed(command string, cause error) *SpabuildError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build engine failed").
		WithContext("command", command)
}

func FileSystemError(operation, path string, cause error) *SpabuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func InternalError(message string, cause error) *SpabuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
