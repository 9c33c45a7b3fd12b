package shared

import (
	"fmt"
	"strings"
)

// ParseDatasetRef splits an "owner/slug" string into a DatasetRef.
func ParseDatasetRef(s string) (DatasetRef, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return DatasetRef{}, fmt.Errorf("invalid dataset reference %q, expected owner/slug", s)
	}
	return DatasetRef{Owner: parts[0], Slug: parts[1]}, nil
}

// String returns the canonical "owner/slug" form.
func (d DatasetRef) String() string {
	return d.Owner + "/" + d.Slug
}
