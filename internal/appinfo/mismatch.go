package appinfo

import "sort"

// Mismatch fields.
const (
	FieldPackage = "package"
	FieldVersion = "version"
)

// Mismatch records a manifest that disagrees with the primary detection.
type Mismatch struct {
	// Path is the disagreeing manifest.
	Path string

	// Field is FieldPackage or FieldVersion.
	Field string

	// Expected is the value of the primary detection.
	Expected string

	// Actual is the value found in Path.
	Actual string
}

// DetectMismatches compares every detection with the first one. Versions are
// only compared when both manifests record one.
func DetectMismatches(detections []Detection) []Mismatch {
	if len(detections) < 2 {
		return nil
	}

	primary := detections[0]
	var mismatches []Mismatch
	for _, det := range detections[1:] {
		if det.PackageName != primary.PackageName {
			mismatches = append(mismatches, Mismatch{
				Path:     det.Path,
				Field:    FieldPackage,
				Expected: primary.PackageName,
				Actual:   det.PackageName,
			})
		}
		if primary.Version != "" && det.Version != "" && det.Version != primary.Version {
			mismatches = append(mismatches, Mismatch{
				Path:     det.Path,
				Field:    FieldVersion,
				Expected: primary.Version,
				Actual:   det.Version,
			})
		}
	}

	sort.SliceStable(mismatches, func(i, j int) bool {
		return mismatches[i].Path < mismatches[j].Path
	})
	return mismatches
}
