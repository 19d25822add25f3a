package render

import (
	"fmt"
	"os"
)

// DefaultPreamble opens the document when no preamble file is configured
const DefaultPreamble = `# Hi there 👋

Below is every public repository on this account, newest first.
This section is regenerated automatically; edits to it will be overwritten.`

// LoadPreamble reads the preamble from path, or returns DefaultPreamble
// when path is empty.
func LoadPreamble(path string) (string, error) {
	if path == "" {
		return DefaultPreamble, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read preamble %s: %w", path, err)
	}

	return string(data), nil
}
