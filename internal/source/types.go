package source

type (
	// UnitID uniquely identifies a source unit within a UnitSet.
	// Valid IDs start at 1; NoUnit marks the absence of a unit.
	UnitID uint32
	// UnitFlags encodes metadata about a source unit.
	UnitFlags uint8
)

// NoUnit is the zero UnitID. Spans carrying NoUnit have no source location.
const NoUnit UnitID = 0

const (
	// UnitVirtual indicates the unit was added from memory (test, stdin, etc.).
	UnitVirtual UnitFlags = 1 << iota
	UnitHadBOM
	UnitNormalizedCRLF
)

// Unit captures metadata and content for a single source unit.
type Unit struct {
	ID      UnitID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   UnitFlags
}

// LineCol represents a human-readable position in a source unit.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
