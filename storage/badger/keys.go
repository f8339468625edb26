package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/cadsentinel/core"
)

// Key prefixes for different data types
const (
	documentPrefix     = "doc"
	versionPrefix      = "dver"
	versionByDocPrefix = "dverd"
	dimensionPrefix    = "dim"
	dimensionVerPrefix = "dimv"
	notePrefix         = "note"
	noteVerPrefix      = "notev"
	summaryPrefix      = "sum"
	chunkPrefix        = "chnk"
	chunkVerPrefix     = "chnkv"
	artifactPrefix     = "file"
	artifactVerPrefix  = "filev"

	dimensionIDSeq = "dimseq"
	noteIDSeq      = "noteseq"
	summaryIDSeq   = "sumseq"
	chunkIDSeq     = "chnkseq"
	artifactIDSeq  = "fileseq"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeVersionKey generates a key for a version by ID.
func makeVersionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", versionPrefix, id))
}

// makeDimensionKey generates a key for a dimension by ID.
func makeDimensionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", dimensionPrefix, id))
}

// makeNoteKey generates a key for a note by ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", notePrefix, id))
}

// makeSummaryKey generates a key for the summary of a version. One
// summary per version, so the version ID is the key.
func makeSummaryKey(versionId core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", summaryPrefix, versionId))
}

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkPrefix, id))
}

// makeArtifactKey generates a key for a file artifact by ID.
func makeArtifactKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", artifactPrefix, id))
}

// makeCompositeKey generates a composite index key.
// Format: prefix:ownerID:memberID, IDs in BigEndian order so
// lexicographic sort matches numeric order.
func makeCompositeKey(prefix string, ownerID, memberID core.ID) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+16)
	offset := copy(buf, p)
	binary.BigEndian.PutUint64(buf[offset:], uint64(ownerID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(memberID))
	return buf
}

// makePartialCompositeKey generates the prefix for scanning a composite
// index by owner.
func makePartialCompositeKey(prefix string, ownerID core.ID) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+8)
	offset := copy(buf, p)
	binary.BigEndian.PutUint64(buf[offset:], uint64(ownerID))
	return buf
}

// memberIDFromCompositeKey extracts the member ID from a composite
// index key.
func memberIDFromCompositeKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}
