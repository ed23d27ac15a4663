package vfat

// dataBlock translates a FAT entry index into the actual device block number
// holding that data block.
func (fs *FileSystem) dataBlock(fatIndex uint16) uint16 {
	return fs.sb.DataIndex + fatIndex
}

// Read copies up to len(p) bytes from handle h's current offset into p,
// advancing the offset by the number of bytes actually read. It returns
// fewer bytes than len(p) — down to 0 — once the file's end is reached; that
// is not an error.
func (fs *FileSystem) Read(h int, p []byte) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}
	if !fs.fds.valid(h) {
		return 0, newErr(ErrBadHandle, "invalid file descriptor %d", h)
	}
	if len(p) == 0 {
		return 0, nil
	}

	d := &fs.fds.slots[h]
	entry := &fs.root.entries[d.rootSlot]

	remaining := int(entry.Size) - d.offset
	if remaining <= 0 {
		return 0, nil
	}
	toRead := len(p)
	if toRead > remaining {
		toRead = remaining
	}

	bounce := make([]byte, BlockSize)
	read := 0
	for read < toRead {
		fatIdx := fs.fat.blockAtFileOffset(entry.FirstIndex, d.offset)
		if fatIdx == FatEOC {
			// Chain shorter than Size claims; stop early rather than
			// fabricate bytes.
			break
		}

		blockOff := d.offset % BlockSize
		n := BlockSize - blockOff
		if n > toRead-read {
			n = toRead - read
		}

		if err := fs.dev.ReadBlock(fs.dataBlock(fatIdx), bounce); err != nil {
			return read, err
		}
		copy(p[read:read+n], bounce[blockOff:blockOff+n])

		read += n
		d.offset += n
	}

	return read, nil
}

// Write copies len(p) bytes from p into handle h's file starting at its
// current offset, extending the file (and its FAT chain) as needed, and
// advancing the offset by the number of bytes actually written. It returns
// fewer bytes than len(p) only if the FAT runs out of free blocks partway
// through; the file's size is updated to reflect exactly what was written
// before that happened.
func (fs *FileSystem) Write(h int, p []byte) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}
	if !fs.fds.valid(h) {
		return 0, newErr(ErrBadHandle, "invalid file descriptor %d", h)
	}
	if len(p) == 0 {
		return 0, nil
	}

	d := &fs.fds.slots[h]
	entry := &fs.root.entries[d.rootSlot]

	bounce := make([]byte, BlockSize)
	written := 0
	for written < len(p) {
		fatIdx := fs.fat.blockAtFileOffset(entry.FirstIndex, d.offset)
		if fatIdx == FatEOC {
			newIdx := fs.fat.extendChain(&entry.FirstIndex)
			if newIdx == -1 {
				break
			}
			fatIdx = uint16(newIdx)
		}

		blockOff := d.offset % BlockSize
		n := BlockSize - blockOff
		if n > len(p)-written {
			n = len(p) - written
		}

		device := fs.dataBlock(fatIdx)
		if blockOff != 0 || n != BlockSize {
			if err := fs.dev.ReadBlock(device, bounce); err != nil {
				return written, err
			}
		}
		copy(bounce[blockOff:blockOff+n], p[written:written+n])
		if err := fs.dev.WriteBlock(device, bounce); err != nil {
			return written, err
		}

		written += n
		d.offset += n
		if uint32(d.offset) > entry.Size {
			entry.Size = uint32(d.offset)
		}
	}

	return written, nil
}
