package vfat

// Format writes a fresh superblock, FAT, and empty root directory to the
// image at path, first creating it (or truncating an existing file). totalBlocks
// is the whole size of the image, including the superblock and FAT blocks
// themselves; the caller decides it, this helper derives everything else.
//
// This is a convenience for producing test images and is not part of the
// mounted filesystem's operational surface — it never touches an already
// mounted FileSystem.
func Format(path string, totalBlocks int) error {
	if totalBlocks < 4 {
		return newErr(ErrBadDisk, "need at least 4 blocks (superblock + 1 FAT block + root + 1 data block), got %d", totalBlocks)
	}

	if err := CreateImage(path, totalBlocks); err != nil {
		return err
	}

	dev := &FileBlockDevice{}
	if err := dev.Open(path); err != nil {
		return err
	}
	defer dev.Close()

	// data_blocks = total - 1 (superblock) - 1 (root) - fat_blocks, and each
	// FAT block holds 2048 16-bit entries; solve fatBlocks such that
	// fatBlocks*2048 >= dataBlocks = total - 2 - fatBlocks.
	const entriesPerFatBlock = BlockSize / 2
	fatBlocks := 1
	for {
		dataBlocks := totalBlocks - 2 - fatBlocks
		if dataBlocks < 1 {
			return newErr(ErrBadDisk, "image too small to hold any data blocks")
		}
		if fatBlocks*entriesPerFatBlock >= dataBlocks {
			sb := &superblock{
				Signature:   Signature,
				TotalBlocks: uint16(totalBlocks),
				RootIndex:   uint16(1 + fatBlocks),
				DataIndex:   uint16(1 + fatBlocks + 1),
				DataBlocks:  uint16(dataBlocks),
				FatBlocks:   uint8(fatBlocks),
			}
			if err := dev.WriteBlock(0, sb.encode()); err != nil {
				return err
			}

			fat := &fatTable{entries: make([]uint16, dataBlocks)}
			fat.entries[0] = FatEOC
			if err := fat.flush(dev, sb.FatBlocks); err != nil {
				return err
			}

			root := &rootDirectory{}
			return dev.WriteBlock(sb.RootIndex, root.encode())
		}
		fatBlocks++
	}
}
