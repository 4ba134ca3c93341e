package cepac

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempKeyedFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.in")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "writing temp keyed file", err)
	}
	return path
}

func TestParseKeyedFile_SectionsAndComments(t *testing.T) {
	path := writeTempKeyedFile(t, `
# a comment line
[oi_base_prob]
pcp 0.01 0.02 0.03
mac 0.005 0.01 0.02

[unknown_section]
foo 1 2 3
`)
	sections, err := ParseKeyedFile(path)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling ParseKeyedFile", err)
	}
	if l := len(sections); l != 2 {
		t.Fatalf(UnequalIntParameterError, "number of sections", 2, l)
	}
	if sections[0].Name != "oi_base_prob" {
		t.Errorf(UnequalStringParameterError, "first section name", "oi_base_prob", sections[0].Name)
	}
	vals, err := sections[0].Floats("pcp")
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "reading pcp key", err)
	}
	if l := len(vals); l != 3 {
		t.Errorf(UnequalIntParameterError, "number of pcp values", 3, l)
	}
	if vals[1] != 0.02 {
		t.Errorf(UnequalFloatParameterError, "pcp value at stratum 1", 0.02, vals[1])
	}
}

func TestParseKeyedFile_ValueLineOutsideSectionErrors(t *testing.T) {
	path := writeTempKeyedFile(t, "stray 1 2 3\n")
	if _, err := ParseKeyedFile(path); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "parsing a value line outside any section", "expected a parse error, got nil")
	}
}

func TestKeyedSection_MissingKeyError(t *testing.T) {
	s := KeyedSection{Name: "oi_base_prob", Tokens: map[string][]string{}}
	if _, err := s.Float("pcp", 0); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "reading a missing key", "expected an error, got nil")
	}
}

func TestKeyedSection_UnparsableFieldError(t *testing.T) {
	s := KeyedSection{Name: "oi_base_prob", Tokens: map[string][]string{"pcp": {"not-a-number"}}}
	if _, err := s.Float("pcp", 0); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "parsing a malformed float", "expected an error, got nil")
	}
	if _, err := s.Int("pcp", 0); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "parsing a malformed int", "expected an error, got nil")
	}
}

func TestKeyedSection_Bool(t *testing.T) {
	s := KeyedSection{Name: "s", Tokens: map[string][]string{
		"a": {"true"}, "b": {"0"}, "c": {"garbage"},
	}}
	if v, err := s.Bool("a", 0); err != nil || !v {
		t.Errorf(UnequalStringParameterError, "Bool(\"true\")", "true", "error-or-false")
	}
	if v, err := s.Bool("b", 0); err != nil || v {
		t.Errorf(UnequalStringParameterError, "Bool(\"0\")", "false", "error-or-true")
	}
	if _, err := s.Bool("c", 0); err == nil {
		t.Errorf(UnexpectedErrorWhileError, "parsing an unrecognized bool token", "expected an error, got nil")
	}
}

func TestApplyKeyedSections_PopulatesOIProbsAndReportsOrphans(t *testing.T) {
	ctx := &SimContext{}
	sections := []KeyedSection{
		{Name: "oi_base_prob", Tokens: map[string][]string{
			"pcp":     {"0.1", "0.2"},
			"unknown": {"9"},
		}},
		{Name: "future_table", Tokens: map[string][]string{"x": {"1"}}},
	}
	orphans, err := ApplyKeyedSections(ctx, sections)
	if err != nil {
		t.Fatalf(UnexpectedErrorWhileError, "calling ApplyKeyedSections", err)
	}
	if got := ctx.OI.BaseProbByCD4Stratum[OIPCP][1]; got != 0.2 {
		t.Errorf(UnequalFloatParameterError, "OI.BaseProbByCD4Stratum[PCP][1]", 0.2, got)
	}
	if l := len(orphans); l != 2 {
		t.Fatalf(UnequalIntParameterError, "number of orphan records", 2, l)
	}
	found := map[string]bool{}
	for _, o := range orphans {
		found[o.Section+"/"+o.Key] = true
	}
	if !found["oi_base_prob/unknown"] {
		t.Errorf(UnexpectedErrorWhileError, "checking orphans for an unrecognized key in a known section", "oi_base_prob/unknown not found")
	}
	if !found["future_table/x"] {
		t.Errorf(UnexpectedErrorWhileError, "checking orphans for an entirely unrecognized section", "future_table/x not found")
	}
}
