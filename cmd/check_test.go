package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "p.json")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunCheck_CleanPuzzle(t *testing.T) {
	p := writeFile(t, `{"id":"solsi","title":"Sol","clues":[
		{"id":"c1","direction":"across","clue":"Astro rey","answer":"sol","startRow":0,"startCol":0},
		{"id":"c2","direction":"down","clue":"Afirmación","answer":"si","startRow":0,"startCol":0}]}`)

	var out bytes.Buffer
	if err := runCheck(&out, p, checkOpts{reveal: true, strict: true}); err != nil {
		t.Fatalf("check: %v", err)
	}
	s := out.String()
	for _, want := range []string{"Sol (solsi)", "2 clues, 2 placed, 8x8", "layout ok", "1S", "L"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRunCheck_HidesLettersWithoutReveal(t *testing.T) {
	p := writeFile(t, `{"id":"x","clues":[{"id":"a","direction":"across","answer":"PEZ","startRow":0,"startCol":0}]}`)
	var out bytes.Buffer
	if err := runCheck(&out, p, checkOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "PEZ") || strings.Contains(out.String(), "1P") {
		t.Fatalf("solution shown:\n%s", out.String())
	}
}

func TestRunCheck_StrictFailsOnIssues(t *testing.T) {
	p := writeFile(t, `{"id":"x","clues":[
		{"id":"a","direction":"across","answer":"GATO","startRow":0,"startCol":0},
		{"id":"b","direction":"down","answer":"PERRO","startRow":0,"startCol":0}]}`)

	var out bytes.Buffer
	if err := runCheck(&out, p, checkOpts{reveal: true}); err != nil {
		t.Fatalf("lenient check failed: %v", err)
	}
	if !strings.Contains(out.String(), "conflicting letters") {
		t.Fatalf("issue not listed:\n%s", out.String())
	}

	out.Reset()
	if err := runCheck(&out, p, checkOpts{reveal: true, strict: true}); !errors.Is(err, errLayout) {
		t.Fatalf("strict err = %v", err)
	}
}

func TestRunCheck_BadFile(t *testing.T) {
	if err := runCheck(&bytes.Buffer{}, writeFile(t, "nope"), checkOpts{}); err == nil {
		t.Fatal("expected parse error")
	}
	if err := runCheck(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.json"), checkOpts{}); err == nil {
		t.Fatal("expected read error")
	}
}

func TestRunCheck_Plain(t *testing.T) {
	p := writeFile(t, `{"id":"x","clues":[{"id":"a","direction":"across","answer":"PEZ","startRow":0,"startCol":0}]}`)
	var out bytes.Buffer
	if err := runCheck(&out, p, checkOpts{reveal: true, plain: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "PEZ#####\n########") {
		t.Fatalf("plain grid missing:\n%s", out.String())
	}
}

func TestRunCheck_Normalize(t *testing.T) {
	p := writeFile(t, `{"id":"x","name":"Peces","clues":[{"direction":"h","text":"Pez","answer":"pez","start_row":0,"start_col":0}]}`)
	var out bytes.Buffer
	if err := runCheck(&out, p, checkOpts{normalize: true}); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{`"title":"Peces"`, `"id":"1-across"`, `"startRow":0`, `"clue":"Pez"`} {
		if !strings.Contains(s, want) {
			t.Errorf("normalized output missing %s: %s", want, s)
		}
	}
}

func TestRunCheck_ClueTableMarksDropped(t *testing.T) {
	p := writeFile(t, `{"id":"x","clues":[
		{"id":"a","direction":"across","answer":"GATO","startRow":0,"startCol":0},
		{"id":"b","direction":"down","answer":"PERRO","startRow":0,"startCol":0}]}`)
	var out bytes.Buffer
	if err := runCheck(&out, p, checkOpts{reveal: true}); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "placed") || !strings.Contains(s, "dropped") || !strings.Contains(s, "PERRO") {
		t.Fatalf("clue table incomplete:\n%s", s)
	}
}
