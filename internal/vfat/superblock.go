package vfat

import (
	"bytes"
	"encoding/binary"
)

// Signature is the literal 8-byte magic every valid vfat image starts with.
// No NUL terminator — all eight bytes are significant.
var Signature = [8]byte{'E', 'C', 'S', '1', '5', '0', 'F', 'S'}

const superblockPadding = 4079

// superblock is the packed, exactly-4096-byte block 0 layout described in
// the on-disk format: signature, block counts, and the start indices of the
// FAT and root directory regions. Like the teacher's FatBootSector, field
// order — not Go struct alignment — defines the wire layout; binary.Read and
// binary.Write walk the fields in declaration order regardless of memory
// layout, so no explicit packing pragma is needed.
type superblock struct {
	Signature   [8]byte
	TotalBlocks uint16
	RootIndex   uint16
	DataIndex   uint16
	DataBlocks  uint16
	FatBlocks   uint8
	_           [superblockPadding]byte
}

func (sb *superblock) encode() []byte {
	buf := new(bytes.Buffer)
	_ = binary.Write(buf, binary.LittleEndian, sb)
	out := buf.Bytes()
	if len(out) != BlockSize {
		panic("vfat: superblock encoded to wrong size")
	}
	return out
}

func decodeSuperblock(block []byte) (*superblock, error) {
	if len(block) != BlockSize {
		return nil, newErr(ErrBadDisk, "superblock block must be %d bytes, got %d", BlockSize, len(block))
	}
	var sb superblock
	if err := binary.Read(bytes.NewReader(block), binary.LittleEndian, &sb); err != nil {
		return nil, newErr(ErrBadDisk, "decode superblock: %v", err)
	}
	return &sb, nil
}

// validate checks every superblock invariant from the on-disk format against
// the block device's actual block count. It does not look at the FAT or root
// directory contents.
func (sb *superblock) validate(deviceBlockCount int) error {
	if sb.Signature != Signature {
		return newErr(ErrBadDisk, "bad signature %q", sb.Signature)
	}
	if int(sb.TotalBlocks) != deviceBlockCount {
		return newErr(ErrBadDisk, "total_blocks=%d does not match device block count %d", sb.TotalBlocks, deviceBlockCount)
	}
	if int(sb.RootIndex) != 1+int(sb.FatBlocks) {
		return newErr(ErrBadDisk, "root_index=%d, expected %d", sb.RootIndex, 1+int(sb.FatBlocks))
	}
	if int(sb.DataIndex) != int(sb.RootIndex)+1 {
		return newErr(ErrBadDisk, "data_index=%d, expected %d", sb.DataIndex, int(sb.RootIndex)+1)
	}
	if int(sb.FatBlocks)*BlockSize < int(sb.DataBlocks)*2 {
		return newErr(ErrBadDisk, "fat_blocks=%d too small to cover data_blocks=%d", sb.FatBlocks, sb.DataBlocks)
	}
	return nil
}
