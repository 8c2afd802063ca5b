package deck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// maxCollisionSuffix bounds the numbered-suffix search for an unused name.
const maxCollisionSuffix = 1000

// uniqueOutputPath returns outputPath if unused, otherwise the first free
// name with a numbered suffix before the extension (file_1.pptx and so on).
func uniqueOutputPath(outputPath string) (string, error) {
	if _, err := os.Stat(outputPath); errors.Is(err, os.ErrNotExist) {
		return outputPath, nil
	}

	ext := filepath.Ext(outputPath)
	base := strings.TrimSuffix(outputPath, ext)
	for i := 1; i <= maxCollisionSuffix; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			fmt.Printf("   File exists, using: %s\n", filepath.Base(candidate))
			return candidate, nil
		}
	}
	return "", fmt.Errorf("too many similarly named files next to %s", outputPath)
}
