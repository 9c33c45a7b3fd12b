package shared

// DatasetRef identifies a Kaggle dataset in "owner/slug" form.
type DatasetRef struct {
	Owner string `json:"owner"`
	Slug  string `json:"slug"`
}

// LoadMode controls how rows are written into an existing table.
type LoadMode string

const (
	// LoadModeReplace drops and recreates the target table before loading.
	LoadModeReplace LoadMode = "replace"
	// LoadModeAppend keeps existing rows and adds the new ones.
	LoadModeAppend LoadMode = "append"
)

// Valid reports whether the mode is one of the supported values.
func (m LoadMode) Valid() bool {
	return m == LoadModeReplace || m == LoadModeAppend
}
