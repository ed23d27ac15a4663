// Package vfat implements a simple FAT-style filesystem hosted inside a
// fixed-size virtual disk image of uniform 4096-byte blocks. It exposes a
// POSIX-like file API over a BlockDevice collaborator: mount, unmount,
// create, delete, list, open, close, stat, seek, read, write.
//
// The package is single-threaded and synchronous by design: no locking, no
// crash consistency, no concurrency. Callers embedding FileSystem in a
// multi-threaded program are responsible for external serialization.
package vfat

// FileSystem is the mounted state of one vfat image: the superblock, the
// FAT, the root directory, and the open-file table. It is the single owning
// value the state-machine transition (Unmounted -> Mounted -> Unmounted)
// operates on — construct one with Mount, destroy it with Unmount.
type FileSystem struct {
	dev BlockDevice

	mounted bool
	sb      *superblock
	fat     *fatTable
	root    *rootDirectory
	fds     descriptorTable
}

// New returns an unmounted FileSystem that will use dev for all block I/O.
// If dev is nil, a FileBlockDevice is used.
func New(dev BlockDevice) *FileSystem {
	if dev == nil {
		dev = &FileBlockDevice{}
	}
	return &FileSystem{dev: dev}
}

// Mount opens name through the filesystem's BlockDevice, validates the
// on-disk layout, and loads the superblock, FAT, and root directory into
// memory. On any validation failure the block device is closed and the
// filesystem is left unmounted.
func (fs *FileSystem) Mount(name string) error {
	if fs.mounted {
		return newErr(ErrAlreadyMounted, "filesystem already mounted")
	}

	if err := fs.dev.Open(name); err != nil {
		return err
	}

	sbBlock := make([]byte, BlockSize)
	if err := fs.dev.ReadBlock(0, sbBlock); err != nil {
		fs.dev.Close()
		return err
	}

	sb, err := decodeSuperblock(sbBlock)
	if err != nil {
		fs.dev.Close()
		return err
	}

	if err := sb.validate(fs.dev.Count()); err != nil {
		fs.dev.Close()
		return err
	}

	fat, err := loadFAT(fs.dev, sb.FatBlocks, sb.DataBlocks)
	if err != nil {
		fs.dev.Close()
		return err
	}
	if fat.entries[0] != FatEOC {
		fs.dev.Close()
		return newErr(ErrBadDisk, "FAT entry 0 must be FAT_EOC, got 0x%04X", fat.entries[0])
	}

	rootBlock := make([]byte, BlockSize)
	if err := fs.dev.ReadBlock(sb.RootIndex, rootBlock); err != nil {
		fs.dev.Close()
		return err
	}
	root, err := decodeRootDirectory(rootBlock)
	if err != nil {
		fs.dev.Close()
		return err
	}

	fs.sb = sb
	fs.fat = fat
	fs.root = root
	fs.fds.reset()
	fs.mounted = true
	return nil
}

// Unmount flushes the superblock, FAT, and root directory back to disk, in
// that order, then closes the block device. It fails if the filesystem is
// not mounted or if any descriptor is still open.
func (fs *FileSystem) Unmount() error {
	if !fs.mounted {
		return newErr(ErrNotMounted, "filesystem not mounted")
	}
	if fs.fds.count() > 0 {
		return newErr(ErrBusyFile, "%d descriptor(s) still open", fs.fds.count())
	}

	if err := fs.dev.WriteBlock(0, fs.sb.encode()); err != nil {
		return err
	}
	if err := fs.fat.flush(fs.dev, fs.sb.FatBlocks); err != nil {
		return err
	}
	if err := fs.dev.WriteBlock(fs.sb.RootIndex, fs.root.encode()); err != nil {
		return err
	}

	if err := fs.dev.Close(); err != nil {
		return err
	}

	fs.sb = nil
	fs.fat = nil
	fs.root = nil
	fs.mounted = false
	return nil
}

func (fs *FileSystem) requireMounted() error {
	if !fs.mounted {
		return newErr(ErrNotMounted, "filesystem not mounted")
	}
	return nil
}

// Info is the diagnostic snapshot printed by the `info` CLI command.
type Info struct {
	TotalBlocks uint16
	FatBlocks   uint8
	RootIndex   uint16
	DataIndex   uint16
	DataBlocks  uint16
	FatFree     int
	RootDirFree int
}

// Info returns a snapshot of the mounted filesystem's layout and free space.
func (fs *FileSystem) Info() (Info, error) {
	if err := fs.requireMounted(); err != nil {
		return Info{}, err
	}
	return Info{
		TotalBlocks: fs.sb.TotalBlocks,
		FatBlocks:   fs.sb.FatBlocks,
		RootIndex:   fs.sb.RootIndex,
		DataIndex:   fs.sb.DataIndex,
		DataBlocks:  fs.sb.DataBlocks,
		FatFree:     fs.fat.freeCount(),
		RootDirFree: fs.root.freeCount(),
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return newErr(ErrNullName, "filename must not be empty")
	}
	if len(name) > MaxFilenameLen {
		return newErr(ErrNameTooLong, "filename %q exceeds %d characters", name, MaxFilenameLen)
	}
	return nil
}

// Create adds a new, empty file named name to the root directory.
func (fs *FileSystem) Create(name string) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if fs.root.lookup(name) != -1 {
		return newErr(ErrFileExists, "%q already exists", name)
	}
	if fs.root.firstEmpty() == -1 {
		return newErr(ErrDirectoryFull, "root directory is full")
	}
	fs.root.create(name)
	return nil
}

// Delete removes name from the root directory and frees its FAT chain. It
// refuses to delete a file that has any open descriptor, so a reader or
// writer mid-stream never has its blocks pulled out from under it.
func (fs *FileSystem) Delete(name string) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}
	slot := fs.root.lookup(name)
	if slot == -1 {
		return newErr(ErrNoSuchFile, "%q does not exist", name)
	}
	if fs.fds.anyOpenFor(slot) {
		return newErr(ErrBusyFile, "%q has open descriptors", name)
	}

	fs.fat.freeChain(fs.root.entries[slot].FirstIndex)
	fs.root.remove(slot)
	return nil
}

// List returns the root directory's entries in slot order.
func (fs *FileSystem) List() ([]ListEntry, error) {
	if err := fs.requireMounted(); err != nil {
		return nil, err
	}
	return fs.root.list(), nil
}

// ChainLength returns the number of FAT entries in the chain rooted at
// firstIndex (0 for FatEOC, i.e. an empty file).
func (fs *FileSystem) ChainLength(firstIndex uint16) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}
	return fs.fat.chainLength(firstIndex), nil
}

// Stat reports the size, in bytes, of the file open on handle h.
func (fs *FileSystem) Stat(h int) (uint32, error) {
	if err := fs.requireMounted(); err != nil {
		return 0, err
	}
	if !fs.fds.valid(h) {
		return 0, newErr(ErrBadHandle, "invalid file descriptor %d", h)
	}
	return fs.root.entries[fs.fds.slots[h].rootSlot].Size, nil
}

// Open returns a new descriptor handle for name, positioned at offset 0.
func (fs *FileSystem) Open(name string) (int, error) {
	if err := fs.requireMounted(); err != nil {
		return -1, err
	}
	slot := fs.root.lookup(name)
	if slot == -1 {
		return -1, newErr(ErrNoSuchFile, "%q does not exist", name)
	}
	h := fs.fds.claim(slot)
	if h == -1 {
		return -1, newErr(ErrTooManyOpen, "no free descriptor slots")
	}
	return h, nil
}

// Close releases handle h.
func (fs *FileSystem) Close(h int) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}
	if !fs.fds.close(h) {
		return newErr(ErrBadHandle, "invalid file descriptor %d", h)
	}
	return nil
}

// Lseek repositions handle h's offset to off, which must lie within
// [0, size] of the underlying file — seeking exactly to size (one past the
// last byte) is valid and simply primes the next Write to extend the file.
func (fs *FileSystem) Lseek(h int, off int) error {
	if err := fs.requireMounted(); err != nil {
		return err
	}
	if !fs.fds.valid(h) {
		return newErr(ErrBadHandle, "invalid file descriptor %d", h)
	}
	size := int(fs.root.entries[fs.fds.slots[h].rootSlot].Size)
	if off < 0 || off > size {
		return newErr(ErrSeekOutOfRange, "offset %d out of range [0, %d]", off, size)
	}
	fs.fds.slots[h].offset = off
	return nil
}
