// Package view combines a record detail with its superposed structure into the presentation payload.
package view

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/tikz/vsdalign/alignment"
	"github.com/tikz/vsdalign/interaction"
	"github.com/tikz/vsdalign/pdb"
	"github.com/tikz/vsdalign/residue"
	"github.com/tikz/vsdalign/store"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options select what is highlighted.
type Options struct {
	Mismatch string  // match symbol flagging a mutation, residue.DefaultMismatch if empty
	Zones    []int64 // zone numbers to highlight, every zone if empty

	// contact cutoff in angstroms for waters near zone residues, interaction.DefaultWaterDistance if zero
	WaterDistance float64
}

// Structure summarizes the superposed structure.
type Structure struct {
	Title      string   `json:"title,omitempty" yaml:"title,omitempty"`
	Chains     []string `json:"chains" yaml:"chains"`
	Residues   int      `json:"residues" yaml:"residues"`
	Solvent    int      `json:"solvent" yaml:"solvent"`
	Resolution float64  `json:"resolution,omitempty" yaml:"resolution,omitempty"`
}

// View is the presentation payload of one record.
type View struct {
	Key           store.Key                           `json:"key" yaml:"key"`
	AlignmentMain alignment.Main                      `json:"alignment_main" yaml:"alignment_main"`
	AlignedZones  [alignment.ZoneCount]alignment.Zone `json:"aligned_zones" yaml:"aligned_zones"`
	Provenance    *alignment.Provenance               `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Structure     *Structure                          `json:"structure,omitempty" yaml:"structure,omitempty"`
	Residues      map[int64]residue.Annotation        `json:"residues" yaml:"residues"`
	Zones         []residue.Zone                      `json:"zones" yaml:"zones"`
	Mutated       []int64                             `json:"mutated" yaml:"mutated"`
	Waters        map[int64]int                       `json:"zone_waters" yaml:"zone_waters"`
	Fields        []alignment.ZoneFields              `json:"zone_fields,omitempty" yaml:"zone_fields,omitempty"`
	Warnings      []string                            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Build maps the alignment of a record onto its superposed structure. A record without a structure
// still gets its alignment and zones, with empty residue maps and a warning.
func Build(d *alignment.Detail, opts Options) (*View, error) {
	symbol := opts.Mismatch
	if symbol == "" {
		symbol = residue.DefaultMismatch
	}

	v := &View{
		Key:           d.Key,
		AlignmentMain: d.Main,
		AlignedZones:  d.Zones,
		Provenance:    d.Provenance,
		Residues:      map[int64]residue.Annotation{},
		Zones:         []residue.Zone{},
		Mutated:       []int64{},
		Waters:        map[int64]int{},
		Fields:        d.Fields,
		Warnings:      append([]string(nil), d.Warnings...),
	}

	if d.Structure == "" {
		v.Warnings = append(v.Warnings, "no superposed structure")
		return v, nil
	}

	p, err := pdb.NewPDBFromRaw([]byte(d.Structure))
	if err != nil {
		return nil, fmt.Errorf("%s: superposed structure: %w", d.Key, err)
	}
	v.Structure = &Structure{
		Title:      p.Title,
		Chains:     p.ChainIDs(),
		Residues:   int(p.TotalLength),
		Solvent:    len(p.Solvent),
		Resolution: p.Resolution,
	}

	m := p.Mapping()
	v.Residues = residue.SequenceMap(m, d.Main.Target, d.Main.Match)
	v.Zones = residue.MapZones(m, d.Main.Target, zoneInputs(d, opts.Zones))

	for _, z := range v.Zones {
		if len(z.Residues) == 0 && z.Sequence != "" {
			v.Warnings = append(v.Warnings, fmt.Sprintf("zone %d: fragment not found in target sequence", z.ZoneNumber))
		}
	}

	distance := opts.WaterDistance
	if distance <= 0 {
		distance = interaction.DefaultWaterDistance
	}
	var zoneResidues []int64
	for _, z := range v.Zones {
		zoneResidues = append(zoneResidues, z.Residues...)
	}
	v.Waters = interaction.Waters(p, zoneResidues, distance)

	if len(opts.Zones) == 0 {
		v.Mutated = residue.MutatedResidues(v.Residues, symbol)
	} else {
		for _, z := range v.Zones {
			v.Mutated = append(v.Mutated, residue.Mutated(z.Matches, symbol)...)
		}
	}

	return v, nil
}

// zoneInputs lists the zones to map. Decoded zone fields carry zone numbers; without them the
// non-empty zone slots are numbered by position.
func zoneInputs(d *alignment.Detail, only []int64) []residue.ZoneInput {
	var inputs []residue.ZoneInput
	if len(d.Fields) > 0 {
		for i, f := range d.Fields {
			n := int64(i + 1)
			if f.ZoneNumber != nil {
				n = *f.ZoneNumber
			}
			inputs = append(inputs, residue.ZoneInput{ZoneNumber: n, Fragment: f.Fragment, Match: f.Match})
		}
	} else {
		for i, z := range d.Zones {
			if z.Empty() {
				continue
			}
			inputs = append(inputs, residue.ZoneInput{ZoneNumber: int64(i + 1), Fragment: z.Target, Match: z.Match})
		}
	}

	if len(only) == 0 {
		return inputs
	}

	wanted := make(map[int64]bool, len(only))
	for _, n := range only {
		wanted[n] = true
	}
	var selected []residue.ZoneInput
	for _, in := range inputs {
		if wanted[in.ZoneNumber] {
			selected = append(selected, in)
		}
	}
	return selected
}

// Encode writes v in the given format.
func Encode(w io.Writer, v interface{}, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
