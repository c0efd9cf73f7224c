package main

import (
	"path/filepath"
	"strings"
	"testing"

	"audiosum/internal/testsupport"
)

func TestCheckReportsPerFileAndSummary(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	dir := t.TempDir()
	signature := []byte{
		0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
		0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff,
	}
	testsupport.WriteFLAC(t, filepath.Join(dir, "tagged.flac"), testsupport.FLACSpec{
		MD5:  signature,
		Tags: map[string]string{"MD5": "00112233445566778899aabbccddeeff", "TITLE": "First"},
	})
	testsupport.WriteFLAC(t, filepath.Join(dir, "bare.flac"), testsupport.FLACSpec{})

	out, err := runCommand(t, "--config", cfgPath, "check", dir)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}

	if !strings.Contains(out, "File: "+filepath.Join(dir, "tagged.flac")) {
		t.Fatalf("missing tagged file block:\n%s", out)
	}
	if !strings.Contains(out, "MD5 tag (MD5): 00112233445566778899aabbccddeeff") {
		t.Fatalf("missing MD5 tag line:\n%s", out)
	}
	if !strings.Contains(out, "MD5 of unencoded content: 00112233445566778899aabbccddeeff") {
		t.Fatalf("missing signature line:\n%s", out)
	}
	if !strings.Contains(out, "Title: First") {
		t.Fatalf("missing common tag line:\n%s", out)
	}
	if !strings.Contains(out, "MD5 of unencoded content: not set") {
		t.Fatalf("missing unset signature line:\n%s", out)
	}
	if !strings.Contains(out, "With MD5") {
		t.Fatalf("missing summary table:\n%s", out)
	}
}

func TestCheckReportsMissingArguments(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	dir := t.TempDir()
	testsupport.WriteFLAC(t, filepath.Join(dir, "one.flac"), testsupport.FLACSpec{})

	out, err := runCommand(t, "--config", cfgPath, "check", dir, filepath.Join(dir, "absent.flac"))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No such file or directory: "+filepath.Join(dir, "absent.flac")) {
		t.Fatalf("missing not-found line:\n%s", out)
	}
}

func TestCheckFailsWithoutAudioFiles(t *testing.T) {
	cfgPath := writeTestConfig(t, "")

	if _, err := runCommand(t, "--config", cfgPath, "check", t.TempDir()); err == nil {
		t.Fatal("expected error when no audio files found")
	}
}
