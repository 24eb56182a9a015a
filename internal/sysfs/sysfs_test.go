package sysfs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite_ReplacesExistingValue(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "timer_rate")
	if err := os.WriteFile(p, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := Write(p, "20000"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "20000" {
		t.Fatalf("content=%q want %q", b, "20000")
	}
}

func TestWrite_OpensWithoutTruncation(t *testing.T) {
	// The helper must not pass O_TRUNC: some sysfs attributes reject
	// truncation flags at open() time. A kernel attribute replaces its
	// whole value on every write regardless; on a plain file the old
	// tail survives a shorter write, which is what pins the flag here.
	dir := t.TempDir()
	p := filepath.Join(dir, "scaling_max_freq")
	if err := os.WriteFile(p, []byte("1200000"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := Write(p, "99"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "9900000" {
		t.Fatalf("content=%q want %q", b, "9900000")
	}
}

func TestWrite_MissingAttribute(t *testing.T) {
	dir := t.TempDir()
	err := Write(filepath.Join(dir, "nope"), "1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("err=%v want not-exist", err)
	}
}

func TestRead_RawBytesUpToSize(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "scaling_max_freq")
	if err := os.WriteFile(p, []byte("1200000\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b, err := Read(p, 10)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// Newline preserved: the helper does not trim.
	if string(b) != "1200000\n" {
		t.Fatalf("b=%q want %q", b, "1200000\n")
	}

	b, err = Read(p, 4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(b) != "1200" {
		t.Fatalf("b=%q want %q", b, "1200")
	}
}

func TestRead_MissingAttribute(t *testing.T) {
	dir := t.TempDir()
	_, err := Read(filepath.Join(dir, "nope"), 10)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("err=%v want not-exist", err)
	}
}
