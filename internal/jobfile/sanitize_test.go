// internal/jobfile/sanitize_test.go
package jobfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Movie Name", "Movie Name"},
		{"colon and question", "My:Movie?", "MyMovie"},
		{"path separators", "Movie/Name\\Here", "MovieNameHere"},
		{"runs removed", `A<>:"|?*B`, "AB"},
		{"trailing dot", "Inception.", "Inception"},
		{"only one trailing dot", "Wait...", "Wait.."},
		{"dot before space kept", "Title. ", "Title."},
		{"whitespace", "  Dune  ", "Dune"},
		{"empty", "", ""},
		{"only illegal", "???", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTitle(tt.input)
			assert.Equal(t, tt.want, got, "SanitizeTitle(%q)", tt.input)
		})
	}
}

func TestValidateFolder(t *testing.T) {
	base := "/output/Movies"

	tests := []struct {
		name    string
		folder  string
		wantErr bool
	}{
		{"child", "/output/Movies/Dune", false},
		{"nested", "/output/Movies/A/B", false},
		{"base itself", "/output/Movies", true},
		{"parent", "/output", true},
		{"sibling prefix", "/output/MoviesOld/x", true},
		{"traversal", "/output/Movies/../Series/x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFolder(tt.folder, base)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPathTraversal)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
