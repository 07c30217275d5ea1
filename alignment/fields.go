package alignment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tikz/vsdalign/store"
)

// ZoneFields holds the stored physicochemical values of one validated zone.
// Values are read as stored; missing numbers are nil.
type ZoneFields struct {
	ZoneID              int64    `json:"zone_id" yaml:"zone_id"`
	ReferenceZoneID     *int64   `json:"reference_zone_id" yaml:"reference_zone_id"`
	ZoneNumber          *int64   `json:"zone_number" yaml:"zone_number"`
	Fragment            string   `json:"fragment" yaml:"fragment"`
	Match               string   `json:"match" yaml:"match"`
	Hydrophobicity      *float64 `json:"hydrophobicity" yaml:"hydrophobicity"`
	Volume              *float64 `json:"volume" yaml:"volume"`
	DeltaHydrophobicity *float64 `json:"delta_hydrophobicity" yaml:"delta_hydrophobicity"`
	DeltaVolume         *float64 `json:"delta_volume" yaml:"delta_volume"`
	ChargeType          string   `json:"charge_type" yaml:"charge_type"`
	Charges             string   `json:"charges" yaml:"charges"`
	ReferenceCharges    string   `json:"reference_charges" yaml:"reference_charges"`
}

// splitList splits an aggregated column into exactly n items.
func splitList(field, s, sep string, n int) ([]string, error) {
	if n == 0 {
		if s != "" {
			return nil, &DataInconsistencyError{Field: field, Reason: "values present for zero zones"}
		}
		return []string{}, nil
	}

	items := strings.Split(s, sep)
	if len(items) != n {
		return nil, &DataInconsistencyError{
			Field:  field,
			Reason: fmt.Sprintf("%d values for %d zones", len(items), n),
		}
	}
	return items, nil
}

func parseFloats(field string, items []string) ([]*float64, error) {
	out := make([]*float64, len(items))
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, &DataInconsistencyError{Field: field, Reason: fmt.Sprintf("item %d: %v", i, err)}
		}
		out[i] = &v
	}
	return out, nil
}

func parseInts(field string, items []string) ([]*int64, error) {
	out := make([]*int64, len(items))
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		v, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, &DataInconsistencyError{Field: field, Reason: fmt.Sprintf("item %d: %v", i, err)}
		}
		out[i] = &v
	}
	return out, nil
}

// DecodeZoneFields decodes aggregated zone columns into one ZoneFields per zone, in stored order.
// Every column must split into exactly cols.Count items, otherwise a *DataInconsistencyError is returned.
func DecodeZoneFields(cols *store.ZoneColumns) ([]ZoneFields, error) {
	n := cols.Count

	lists := []struct {
		field string
		value string
		sep   string
	}{
		{field: "zone_ids", value: cols.ZoneIDs, sep: store.ScalarSeparator},
		{field: "reference_zone_ids", value: cols.ReferenceZoneIDs, sep: store.ScalarSeparator},
		{field: "zone_numbers", value: cols.ZoneNumbers, sep: store.ScalarSeparator},
		{field: "fragments", value: cols.Fragments, sep: store.FragmentSeparator},
		{field: "matches", value: cols.Matches, sep: store.ScalarSeparator},
		{field: "hydrophobicity", value: cols.Hydrophobicity, sep: store.ScalarSeparator},
		{field: "volume", value: cols.Volume, sep: store.ScalarSeparator},
		{field: "delta_hydrophobicity", value: cols.DeltaHydrophobicity, sep: store.ScalarSeparator},
		{field: "delta_volume", value: cols.DeltaVolume, sep: store.ScalarSeparator},
		{field: "charge_types", value: cols.ChargeTypes, sep: store.ScalarSeparator},
		{field: "charges", value: cols.Charges, sep: store.ChargeSeparator},
		{field: "reference_charges", value: cols.ReferenceCharges, sep: store.ChargeSeparator},
	}

	split := make(map[string][]string, len(lists))
	for _, l := range lists {
		items, err := splitList(l.field, l.value, l.sep, n)
		if err != nil {
			return nil, err
		}
		split[l.field] = items
	}

	zoneIDs, err := parseInts("zone_ids", split["zone_ids"])
	if err != nil {
		return nil, err
	}
	refIDs, err := parseInts("reference_zone_ids", split["reference_zone_ids"])
	if err != nil {
		return nil, err
	}
	numbers, err := parseInts("zone_numbers", split["zone_numbers"])
	if err != nil {
		return nil, err
	}

	floats := make(map[string][]*float64)
	for _, f := range []string{"hydrophobicity", "volume", "delta_hydrophobicity", "delta_volume"} {
		v, err := parseFloats(f, split[f])
		if err != nil {
			return nil, err
		}
		floats[f] = v
	}

	fields := make([]ZoneFields, n)
	for i := 0; i < n; i++ {
		if zoneIDs[i] == nil {
			return nil, &DataInconsistencyError{Field: "zone_ids", Reason: fmt.Sprintf("item %d is empty", i)}
		}
		fields[i] = ZoneFields{
			ZoneID:              *zoneIDs[i],
			ReferenceZoneID:     refIDs[i],
			ZoneNumber:          numbers[i],
			Fragment:            split["fragments"][i],
			Match:               split["matches"][i],
			Hydrophobicity:      floats["hydrophobicity"][i],
			Volume:              floats["volume"][i],
			DeltaHydrophobicity: floats["delta_hydrophobicity"][i],
			DeltaVolume:         floats["delta_volume"][i],
			ChargeType:          split["charge_types"][i],
			Charges:             split["charges"][i],
			ReferenceCharges:    split["reference_charges"][i],
		}
	}

	return fields, nil
}
