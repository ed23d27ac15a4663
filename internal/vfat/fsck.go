package vfat

import "fmt"

// Issue is one consistency problem found by Fsck.
type Issue struct {
	Code        string
	Description string
}

// FsckReport summarizes a consistency pass over a mounted filesystem.
type FsckReport struct {
	FilesChecked int
	Issues       []Issue
}

func (r *FsckReport) add(code, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Code: code, Description: fmt.Sprintf(format, args...)})
}

// Fsck walks the mounted filesystem's FAT and root directory, checking these
// invariants of the on-disk format: the reserved FAT entry, each file's
// chain length against its declared size, cross-linked or cyclic chains,
// duplicate names, and open-descriptor offsets still within bounds. It does
// not check the free-entry count or filename lengths. It never modifies the
// filesystem. progress, if non-nil, is called after each root-directory
// entry is checked.
func (fs *FileSystem) Fsck(progress func(checked, total int)) (*FsckReport, error) {
	if err := fs.requireMounted(); err != nil {
		return nil, err
	}

	report := &FsckReport{}

	if fs.fat.entries[0] != FatEOC {
		report.add("fat-reserved", "FAT entry 0 is 0x%04X, expected FAT_EOC", fs.fat.entries[0])
	}

	entries := fs.root.list()
	total := len(entries)
	seenNames := make(map[string]bool, total)
	owner := make(map[uint16]string)

	for i, e := range entries {
		if seenNames[e.Name] {
			report.add("dup-name", "duplicate filename %q", e.Name)
		}
		seenNames[e.Name] = true

		wantBlocks := 0
		if e.Size > 0 {
			wantBlocks = (int(e.Size) + BlockSize - 1) / BlockSize
		}

		gotBlocks := 0
		visited := make(map[uint16]bool)
		idx := e.FirstIndex
		for idx != FatEOC {
			if visited[idx] {
				report.add("cycle", "%q: chain cycles back to FAT entry %d", e.Name, idx)
				break
			}
			visited[idx] = true

			if prevOwner, ok := owner[idx]; ok {
				report.add("cross-link", "FAT entry %d is shared by %q and %q", idx, prevOwner, e.Name)
			} else {
				owner[idx] = e.Name
			}

			gotBlocks++
			idx = fs.fat.entries[idx]
		}

		if gotBlocks != wantBlocks {
			report.add("chain-length", "%q: size %d implies %d block(s), chain has %d", e.Name, e.Size, wantBlocks, gotBlocks)
		}

		report.FilesChecked++
		if progress != nil {
			progress(i+1, total)
		}
	}

	for h := range fs.fds.slots {
		d := fs.fds.slots[h]
		if !d.open {
			continue
		}
		size := int(fs.root.entries[d.rootSlot].Size)
		if d.offset < 0 || d.offset > size {
			report.add("bad-offset", "descriptor %d: offset %d out of range [0, %d]", h, d.offset, size)
		}
	}

	return report, nil
}
