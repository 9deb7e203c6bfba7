package errors

import (
	"strings"
)

// ValidateFilename validates the Filename column of an input row. Any
// non-empty string is accepted: filenames are opaque node identifiers, so
// absolute paths, ".." segments and surrounding whitespace are kept verbatim.
func ValidateFilename(name string) error {
	return validateField("Filename", name)
}

// ValidateImportPath validates the Feature Value column of an input row. Any
// non-empty string is accepted as is; 'react' and react are different imports.
func ValidateImportPath(path string) error {
	return validateField("Feature Value", path)
}

func validateField(column, value string) error {
	if value == "" {
		return New(ErrCodeMalformedInput, "%s cannot be empty", column)
	}
	return nil
}

// ValidateInputPath validates a local input file path given on the command line.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}

	return nil
}

// ValidateThreshold checks that an edge-weight threshold is usable.
// A threshold below 1 would keep pairs that share nothing, which never exist.
func ValidateThreshold(t int) error {
	if t < 1 {
		return New(ErrCodeInvalidConfig, "threshold must be at least 1, got %d", t)
	}
	return nil
}
