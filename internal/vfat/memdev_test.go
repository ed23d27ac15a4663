package vfat

import "fmt"

// memBlockDevice is an in-memory BlockDevice used across the package's
// tests, so they don't depend on the filesystem or mmap.
type memBlockDevice struct {
	blocks [][]byte
	opened bool
}

var _ BlockDevice = (*memBlockDevice)(nil)

func newMemBlockDevice(totalBlocks int) *memBlockDevice {
	blocks := make([][]byte, totalBlocks)
	for i := range blocks {
		blocks[i] = make([]byte, BlockSize)
	}
	return &memBlockDevice{blocks: blocks}
}

func (d *memBlockDevice) Open(name string) error {
	d.opened = true
	return nil
}

func (d *memBlockDevice) Close() error {
	d.opened = false
	return nil
}

func (d *memBlockDevice) Count() int {
	if !d.opened {
		return -1
	}
	return len(d.blocks)
}

func (d *memBlockDevice) ReadBlock(i uint16, buf []byte) error {
	if int(i) >= len(d.blocks) {
		return fmt.Errorf("block %d out of range", i)
	}
	copy(buf, d.blocks[i])
	return nil
}

func (d *memBlockDevice) WriteBlock(i uint16, buf []byte) error {
	if int(i) >= len(d.blocks) {
		return fmt.Errorf("block %d out of range", i)
	}
	copy(d.blocks[i], buf)
	return nil
}

// formatMemDevice writes a fresh superblock, FAT, and empty root directory
// directly onto dev, the way vfat.Format does against a real file.
func formatMemDevice(dev *memBlockDevice) error {
	total := len(dev.blocks)
	const entriesPerFatBlock = BlockSize / 2

	fatBlocks := 1
	for {
		dataBlocks := total - 2 - fatBlocks
		if dataBlocks < 0 {
			return fmt.Errorf("device too small")
		}
		if fatBlocks*entriesPerFatBlock >= dataBlocks {
			sb := &superblock{
				Signature:   Signature,
				TotalBlocks: uint16(total),
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
