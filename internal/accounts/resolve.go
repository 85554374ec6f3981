package accounts

import (
	"fmt"
	"strings"

	"github.com/recat-dev/recat/internal/model"
)

// NotFoundError reports an account path that could not be resolved. It
// always carries the full original path, not just the missing segment.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account path %q could not be found", e.Path)
}

// SplitPath splits a colon-delimited account path into its segments.
// "Expenses:Dining" -> ["Expenses", "Dining"].
func SplitPath(path string) []string {
	return strings.Split(path, ":")
}

// Resolve walks the account tree from root, one exact case-sensitive child
// lookup per segment. Any missing segment fails with a NotFoundError naming
// the whole path. No partial or fuzzy matching.
func Resolve(root *model.Account, segments []string) (*model.Account, error) {
	if len(segments) == 0 {
		return nil, &NotFoundError{Path: ""}
	}
	current := root
	for i := 0; i < len(segments); i++ {
		next := current.Child(segments[i])
		if next == nil {
			return nil, &NotFoundError{Path: strings.Join(segments, ":")}
		}
		current = next
	}
	return current, nil
}
