package stylesheet

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		css  string
	}{
		{"rules", ".card-unit { color: red; }\n.card { border: 0 }"},
		{"comments", "/* keep */\n.card { border: 0 }\n"},
		{"page margin boxes", "@page { size: 25in 7in; @top-center { content: \"Core\" } }\n.card{color:red}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "deck.css")
			if err := os.WriteFile(path, []byte(tt.css), 0o644); err != nil {
				t.Fatal(err)
			}

			css, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if css != tt.css {
				t.Errorf("Load() = %q, want the file unchanged %q", css, tt.css)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "none.css")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	if err := Check(".card-unit { color: red; }\n/* note */\n.card { border: 0 }"); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	if err := Check("@page { size: 25in 7in; @top-center { content: \"Core\" } }"); err == nil {
		t.Error("Check() accepted a margin box the parser cannot read")
	}
}
