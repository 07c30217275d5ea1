package pdb

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	titleRegex      = regexp.MustCompile("(?m)^TITLE   [ 0-9]{2}(.*)$")
	methodRegex     = regexp.MustCompile("(?m)^EXPDTA[ 0-9]{4}(.*)$")
	resolutionRegex = regexp.MustCompile("(?m)^REMARK   2 RESOLUTION\\.[ ]*([0-9.]+)[ ]*ANGSTROMS")
)

// ExtractHeader parses the title, experimental method and resolution from the raw PDB header.
// Predicted models usually lack these records, in which case the fields are left empty.
func (pdb *PDB) ExtractHeader() {
	raw := string(pdb.RawPDB)

	var title []string
	for _, m := range titleRegex.FindAllStringSubmatch(raw, -1) {
		title = append(title, strings.TrimSpace(m[1]))
	}
	pdb.Title = strings.Join(title, " ")

	if m := methodRegex.FindStringSubmatch(raw); m != nil {
		pdb.Method = strings.TrimSpace(m[1])
	}

	if m := resolutionRegex.FindStringSubmatch(raw); m != nil {
		pdb.Resolution, _ = strconv.ParseFloat(m[1], 64)
	}
}
