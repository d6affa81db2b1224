package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Caching Strategy - Cache-Aside", "caching_strategy___cache_aside"},
		{"Load Balancer - Round Robin", "load_balancer___round_robin"},
		{"Message Queue - Pub/Sub Pattern", "message_queue___pub_sub_pattern"},
		{"CAP Theorem (Consistency & Availability)", "cap_theorem_consistency__availability"},
		{"Sharding: 2PC vs. Saga!", "sharding_2pc_vs_saga"},
		{"already_clean", "already_clean"},
		{"Caché Layer", "caché_layer"},
		{"分布式锁 - Redlock", "分布式锁___redlock"},
		{"Ölçek/Shard", "ölçek_shard"},
		{"???", "untitled"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.topic); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"caching_strategy___cache_aside", "Caching Strategy   Cache Aside"},
		{"load_balancer.html", "Load Balancer"},
		{"sharding_2pc_vs_saga", "Sharding 2Pc Vs Saga"},
		{"caché_layer", "Caché Layer"},
		{"ölçek_shard", "Ölçek Shard"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.name); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriter_WriteCreatesDirAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demos")
	w := NewWriter(dir)

	path, err := w.Write("Caching Strategy - Cache-Aside", "<!DOCTYPE html><html>v1</html>")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if want := filepath.Join(dir, "caching_strategy___cache_aside.html"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	// A colliding topic silently replaces the file.
	if _, err := w.Write("caching strategy / cache aside", "v2"); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "v2" {
		t.Errorf("content = %q, want full overwrite with v2", b)
	}
}

func TestWriter_FailsWhenDirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "demos")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewWriter(blocker).Write("Topic", "x"); err == nil {
		t.Fatal("Write() expected error when demos dir is a file")
	}
}

func TestLibrary_ListReverseLexical(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	for _, topic := range []string{"Bloom Filters", "Api Gateway", "Rate Limiting"} {
		if _, err := w.Write(topic, "<html><head><title>"+topic+" demo</title></head></html>"); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.html"), 0o755); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(dir)
	got, err := lib.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	if want := []string{"rate_limiting", "bloom_filters", "api_gateway"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List() names = %v, want %v", names, want)
	}
	if got[0].DisplayName != "Rate Limiting" || got[0].Title != "Rate Limiting demo" {
		t.Errorf("entry = %+v", got[0])
	}

	if _, err := w.Write("zzz topic", "<html></html>"); err != nil {
		t.Fatal(err)
	}
	got, err = lib.List()
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Name != "zzz_topic" {
		t.Errorf("newly written zzz_topic should be listed first, got %q", got[0].Name)
	}
}

func TestLibrary_ListMissingDir(t *testing.T) {
	got, err := NewLibrary(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestLibrary_Get(t *testing.T) {
	dir := t.TempDir()
	content := "<!DOCTYPE html>\n<html>\r\n<body>bytes \x00 kept</body></html>"
	if _, err := NewWriter(dir).Write("Consistent Hashing", content); err != nil {
		t.Fatal(err)
	}
	lib := NewLibrary(dir)

	for _, name := range []string{"consistent_hashing", "consistent_hashing.html"} {
		b, err := lib.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", name, err)
		}
		if string(b) != content {
			t.Errorf("Get(%q) = %q, want byte-for-byte %q", name, b, content)
		}
	}

	if _, err := NewWriter(dir).Write("分布式锁", "<html>lock</html>"); err != nil {
		t.Fatal(err)
	}
	if b, err := lib.Get("分布式锁"); err != nil || string(b) != "<html>lock</html>" {
		t.Errorf("Get(分布式锁) = %q, %v", b, err)
	}

	for _, name := range []string{"missing_topic", "", "..", "../secret", `a\b`} {
		if _, err := lib.Get(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", name, err)
		}
	}
}

func TestLibrary_GetDirectoryIsNotFound(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "odd.html"), 0o755); err != nil {
		t.Fatal(err)
	}
	lib := NewLibrary(dir)

	for _, name := range []string{"odd", "odd.html"} {
		if _, err := lib.Get(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", name, err)
		}
	}
	entries, err := lib.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("List() = %v, want directories skipped", entries)
	}
}
