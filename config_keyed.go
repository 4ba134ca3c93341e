package cepac

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// KeyedSection is the set of tokens collected under one keyed-section
// header in a .in file, e.g. the lines following "[oi_base_prob]".
// Values are kept as raw strings; typed accessors below do the
// conversion and report a bad value by key name. Line numbers are
// reported only by ParseKeyedFile's own syntax errors.
type KeyedSection struct {
	Name   string
	Tokens map[string][]string
}

var reKeyedHeader = regexp.MustCompile(`^\[(\w+)\]\s*$`)
var reKeyedLine = regexp.MustCompile(`^(\S+)\s+(.+)$`)

// ParseKeyedFile reads a .in file: blank lines and lines starting with
// "#" are ignored, "[section]" lines start a new KeyedSection, and every
// other non-empty line is "key value value value ...", space-separated
// (§6). This mirrors the teacher's line-oriented bufio.Scanner +
// regexp parsing style rather than a general-purpose config format.
func ParseKeyedFile(path string) ([]KeyedSection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, UnreadableInputError, path)
	}
	defer f.Close()

	var sections []KeyedSection
	var current *KeyedSection
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := reKeyedHeader.FindStringSubmatch(line); m != nil {
			sections = append(sections, KeyedSection{Name: m[1], Tokens: make(map[string][]string)})
			current = &sections[len(sections)-1]
			continue
		}
		if current == nil {
			return nil, errors.Errorf(FileParsingError, lineNum, "value line outside any [section]")
		}
		m := reKeyedLine.FindStringSubmatch(line)
		if m == nil {
			return nil, errors.Errorf(FileParsingError, lineNum, "expected \"key value...\"")
		}
		current.Tokens[m[1]] = strings.Fields(m[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, UnreadableInputError, path)
	}
	return sections, nil
}

// Float parses token i of key as a float64, returning a MissingKeyError
// if the key or its token i is absent and an UnparsableFieldError if the
// token does not parse (neither carries a line number, since sections
// are parsed into memory first).
func (s KeyedSection) Float(key string, i int) (float64, error) {
	toks, ok := s.Tokens[key]
	if !ok || i >= len(toks) {
		return 0, errors.Errorf(MissingKeyError, key, s.Name)
	}
	v, err := strconv.ParseFloat(toks[i], 64)
	if err != nil {
		return 0, errors.Wrapf(err, UnparsableFieldError, key, "not a float")
	}
	return v, nil
}

// Floats parses every token of key as a float64 slice.
func (s KeyedSection) Floats(key string) ([]float64, error) {
	toks, ok := s.Tokens[key]
	if !ok {
		return nil, errors.Errorf(MissingKeyError, key, s.Name)
	}
	out := make([]float64, len(toks))
	for i, t := range toks {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, errors.Wrapf(err, UnparsableFieldError, key, "not a float")
		}
		out[i] = v
	}
	return out, nil
}

// Int parses token i of key as an int.
func (s KeyedSection) Int(key string, i int) (int, error) {
	toks, ok := s.Tokens[key]
	if !ok || i >= len(toks) {
		return 0, errors.Errorf(MissingKeyError, key, s.Name)
	}
	v, err := strconv.Atoi(toks[i])
	if err != nil {
		return 0, errors.Wrapf(err, UnparsableFieldError, key, "not an int")
	}
	return v, nil
}

// Bool parses token i of key as a bool ("true"/"false"/"1"/"0").
func (s KeyedSection) Bool(key string, i int) (bool, error) {
	toks, ok := s.Tokens[key]
	if !ok || i >= len(toks) {
		return false, errors.Errorf(MissingKeyError, key, s.Name)
	}
	switch strings.ToLower(toks[i]) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, errors.Errorf(UnparsableFieldError, key, "expected true/false")
	}
}

// ApplyOIProbabilities fills ctx.OI.BaseProbByCD4Stratum from an
// "[oi_base_prob]" section where each key is the OI's enum name and the
// value list is the probability for each CD4 stratum in ascending
// stratum order. It is representative of how every other per-stratum
// table in ApplyKeyedSections is populated. Keys present in the section
// but not in the recognized OI name set come back as orphans, the same
// as an entire unrecognized section would.
func ApplyOIProbabilities(ctx *SimContext, s KeyedSection) ([]OrphanRecord, error) {
	if ctx.OI.BaseProbByCD4Stratum == nil {
		ctx.OI.BaseProbByCD4Stratum = make(map[OIType]map[int]float64)
	}
	names := map[string]OIType{
		"pcp": OIPCP, "mac": OIMAC, "candidiasis": OICandidiasis,
		"bacterial_pneumonia": OIBacterialPneumonia, "toxoplasmosis": OIToxoplasmosis,
		"cmv": OICMV, "cryptococcosis": OICryptococcosis,
	}
	var orphans []OrphanRecord
	for key := range s.Tokens {
		oi, ok := names[key]
		if !ok {
			orphans = append(orphans, OrphanRecord{Section: s.Name, Key: key})
			continue
		}
		vals, err := s.Floats(key)
		if err != nil {
			return orphans, err
		}
		byStratum := make(map[int]float64, len(vals))
		for i, v := range vals {
			byStratum[i] = v
		}
		ctx.OI.BaseProbByCD4Stratum[oi] = byStratum
	}
	return orphans, nil
}

// ApplyKeyedSections dispatches every parsed section to the table
// populator registered for its name, per §6's mapping from section
// header to SimContext subsystem. Sections this build does not
// recognize are collected as orphans rather than rejected outright, so
// a newer-version input file degrades instead of failing fatally.
func ApplyKeyedSections(ctx *SimContext, sections []KeyedSection) ([]OrphanRecord, error) {
	var orphans []OrphanRecord
	for _, s := range sections {
		switch s.Name {
		case "oi_base_prob":
			sectionOrphans, err := ApplyOIProbabilities(ctx, s)
			orphans = append(orphans, sectionOrphans...)
			if err != nil {
				return orphans, err
			}
		default:
			for key := range s.Tokens {
				orphans = append(orphans, OrphanRecord{Section: s.Name, Key: key})
			}
		}
	}
	return orphans, nil
}
