package modwiki

// Mod represents a single catalog entry parsed from a wiki page.
type Mod struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Author        string   `json:"author,omitempty"`
	Version       string   `json:"version,omitempty"`
	RepositoryURL string   `json:"repository_url,omitempty"`
	SourceURL     string   `json:"source_url"`
	Category      string   `json:"category"`
	Dependencies  []string `json:"dependencies"`
	ContentHash   string   `json:"content_hash,omitempty"`
}

// Validate returns an error if the mod contains invalid fields.
func (m *Mod) Validate() error {
	if m.Name == "" {
		return Errorf(EINVALID, "mod name required")
	}
	if m.Category == "" {
		return Errorf(EINVALID, "mod %q category required", m.Name)
	}
	return nil
}

// ModFields holds the fields a ModParser extracts from a single mod page.
// Optional fields are empty when the page does not provide them.
type ModFields struct {
	Name          string
	Description   string
	Author        string
	Version       string
	RepositoryURL string
	Dependencies  []string
}

// ModResult is the outcome of fetching and parsing one mod page.
// Exactly one of Fields and Err is set.
type ModResult struct {
	// Name is the lookup name as listed in the category.
	Name        string
	SourceURL   string
	Fields      *ModFields
	ContentHash string
	Err         error
}

// ModFailure reports a mod that was left out of a catalog.
type ModFailure struct {
	Name string
	Err  error
}

// CategoryMembers holds the mod names listed under one category.
type CategoryMembers struct {
	Category string
	Names    []string
}

// CategoryFailure reports a category whose listing could not be collected.
type CategoryFailure struct {
	Category string
	Err      error
}
