package document

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.pdf"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("not a PDF", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.pdf")
		if err := os.WriteFile(path, []byte("this is plain text"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := Load(path)
		if err == nil {
			t.Fatal("expected error for non-PDF content")
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q does not name the file", err.Error())
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.pdf")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(path); err == nil {
			t.Fatal("expected error for empty file")
		}
	})
}

func TestEncodePayload(t *testing.T) {
	raw := []byte("%PDF-1.4 fake body")
	payload := encodePayload(raw)

	const prefix = "data:application/pdf;base64,"
	if !strings.HasPrefix(payload, prefix) {
		t.Fatalf("payload %q missing data URL prefix", payload[:30])
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload, prefix))
	if err != nil {
		t.Fatalf("payload body is not valid base64: %v", err)
	}
	if string(decoded) != string(raw) {
		t.Errorf("decoded payload = %q, want %q", decoded, raw)
	}
}

func TestFilename(t *testing.T) {
	d := &Document{path: "/some/dir/report.pdf"}
	if d.Filename() != "report.pdf" {
		t.Errorf("Filename() = %q", d.Filename())
	}
}
