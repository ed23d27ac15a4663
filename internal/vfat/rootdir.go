package vfat

import (
	"bytes"
	"encoding/binary"
)

// MaxFiles is the fixed number of entries in the root directory.
const MaxFiles = 128

// MaxFilenameLen is the longest filename the root directory can hold,
// excluding the terminating NUL.
const MaxFilenameLen = 15

const (
	rootEntrySize   = 32
	rootNameLen     = 16
	rootPaddingSize = 10
)

// rootEntry is one 32-byte slot of the root directory block.
type rootEntry struct {
	Name       [rootNameLen]byte
	Size       uint32
	FirstIndex uint16
	_          [rootPaddingSize]byte
}

func (e *rootEntry) empty() bool { return e.Name[0] == 0 }

func (e *rootEntry) name() string {
	n := bytes.IndexByte(e.Name[:], 0)
	if n == -1 {
		n = len(e.Name)
	}
	return string(e.Name[:n])
}

func (e *rootEntry) setName(name string) {
	e.Name = [rootNameLen]byte{}
	copy(e.Name[:], name)
}

// rootDirectory is the in-memory mirror of the single root-directory block:
// 128 fixed 32-byte entries, addressed by slot index.
type rootDirectory struct {
	entries [MaxFiles]rootEntry
}

func decodeRootDirectory(block []byte) (*rootDirectory, error) {
	if len(block) != BlockSize {
		return nil, newErr(ErrBadDisk, "root directory block must be %d bytes, got %d", BlockSize, len(block))
	}
	var rd rootDirectory
	r := bytes.NewReader(block)
	for i := range rd.entries {
		if err := binary.Read(r, binary.LittleEndian, &rd.entries[i]); err != nil {
			return nil, newErr(ErrBadDisk, "decode root entry %d: %v", i, err)
		}
	}
	return &rd, nil
}

func (rd *rootDirectory) encode() []byte {
	buf := new(bytes.Buffer)
	for i := range rd.entries {
		_ = binary.Write(buf, binary.LittleEndian, &rd.entries[i])
	}
	out := buf.Bytes()
	if len(out) != BlockSize {
		panic("vfat: root directory encoded to wrong size")
	}
	return out
}

// lookup returns the slot index of the entry named name, or -1.
func (rd *rootDirectory) lookup(name string) int {
	for i := range rd.entries {
		if !rd.entries[i].empty() && rd.entries[i].name() == name {
			return i
		}
	}
	return -1
}

func (rd *rootDirectory) firstEmpty() int {
	for i := range rd.entries {
		if rd.entries[i].empty() {
			return i
		}
	}
	return -1
}

// create claims the lowest-index empty slot for name. Validation of the
// name and duplicate checks are the caller's (FileSystem's) responsibility;
// create assumes both have already passed.
func (rd *rootDirectory) create(name string) int {
	slot := rd.firstEmpty()
	if slot == -1 {
		return -1
	}
	rd.entries[slot].setName(name)
	rd.entries[slot].Size = 0
	rd.entries[slot].FirstIndex = FatEOC
	return slot
}

func (rd *rootDirectory) remove(slot int) {
	rd.entries[slot] = rootEntry{}
}

// ListEntry describes one non-empty root-directory slot, in slot order.
type ListEntry struct {
	Name       string
	Size       uint32
	FirstIndex uint16
}

func (rd *rootDirectory) list() []ListEntry {
	var out []ListEntry
	for i := range rd.entries {
		if rd.entries[i].empty() {
			continue
		}
		out = append(out, ListEntry{
			Name:       rd.entries[i].name(),
			Size:       rd.entries[i].Size,
			FirstIndex: rd.entries[i].FirstIndex,
		})
	}
	return out
}

func (rd *rootDirectory) freeCount() int {
	n := 0
	for i := range rd.entries {
		if rd.entries[i].empty() {
			n++
		}
	}
	return n
}
