package dpc

// VersionInfo is the triple a known version_string maps to.
type VersionInfo struct {
	Patch            uint32
	Minor            uint32
	DefaultBlockType uint32
}

// knownVersions mirrors the original toolchain's hardcoded version table:
// the 256-byte NUL-padded version_string primary-header field maps to a
// (patch, minor, default_block_type) triple. An unrecognized string requires
// Options.Unsafe to proceed (SPEC_FULL.md / spec.md §3.1, §7 UnknownVersion).
// Values grounded verbatim on fuel_dpc.rs's version_lookup construction.
var knownVersions = map[string]VersionInfo{
	"v1.530.62.09 - Asobo Studio - Internal Cross Technology": {Patch: 290, Minor: 529, DefaultBlockType: 150},
	"v1.381.67.09 - Asobo Studio - Internal Cross Technology": {Patch: 272, Minor: 380, DefaultBlockType: 253},
	"v1.381.66.09 - Asobo Studio - Internal Cross Technology": {Patch: 272, Minor: 380, DefaultBlockType: 252},
	"v1.381.65.09 - Asobo Studio - Internal Cross Technology": {Patch: 271, Minor: 380, DefaultBlockType: 249},
	"v1.381.64.09 - Asobo Studio - Internal Cross Technology": {Patch: 271, Minor: 380, DefaultBlockType: 249},
	"v1.379.60.09 - Asobo Studio - Internal Cross Technology": {Patch: 269, Minor: 380, DefaultBlockType: 211},
	"v1.325.50.07 - Asobo Studio - Internal Cross Technology": {Patch: 262, Minor: 326, DefaultBlockType: 146},
	"v1.220.50.07 - Asobo Studio - Internal Cross Technology": {Patch: 262, Minor: 221, DefaultBlockType: 144},
}

// DefaultVersion is the version_string used when creating a DPC without an
// explicit override, matching the original's default.
const DefaultVersion = "v1.381.67.09 - Asobo Studio - Internal Cross Technology"

// LookupVersion returns the known version triple for a version_string, or
// ok=false if it is not in the table.
func LookupVersion(versionString string) (VersionInfo, bool) {
	v, ok := knownVersions[versionString]
	return v, ok
}
