package headers

import (
	"fmt"
	"strings"
)

// NotFoundError reports a protocol base directory or document that does
// not exist on disk.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("protocol path does not exist: %s", e.Path)
}

// SetMismatchError reports that the filenames present in the include
// directory differ from the set derived from the configured documents.
type SetMismatchError struct {
	Missing []string
	Extra   []string
}

func (e *SetMismatchError) Error() string {
	return fmt.Sprintf("header set mismatch: missing [%s], extra [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Extra, ", "))
}

// LineCountMismatchError reports a checked-in header whose line count
// differs from the freshly generated one.
type LineCountMismatchError struct {
	Doc      string
	Expected int
	Got      int
}

func (e *LineCountMismatchError) Error() string {
	return fmt.Sprintf("line count mismatch in %s", e.Doc)
}

// LineMismatchError reports the first line at which the checked-in header
// diverges from the freshly generated one. Index is 0-based; Expected is
// the generator's line, Got the checked-in one, both without the trailing
// newline.
type LineMismatchError struct {
	Doc      string
	Index    int
	Expected string
	Got      string
}

func (e *LineMismatchError) Error() string {
	return fmt.Sprintf("mismatch in %s at line %d", e.Doc, e.Index)
}
