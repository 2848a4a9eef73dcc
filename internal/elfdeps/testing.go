// SPDX-FileCopyrightText: 2024 The elfpack authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package elfdeps

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestELF describes a synthetic ELF object for tests.
type TestELF struct {
	// SoName is written as DT_SONAME entry if not empty.
	SoName string
	// Needed are written as DT_NEEDED entries.
	Needed []string
	// Interp is written as PT_INTERP segment if not empty.
	Interp string
}

// WriteTestELF writes a synthetic ELF object with the given name into dir
// and returns its path.
func WriteTestELF(t *testing.T, dir, name string, obj TestELF) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.WriteFile(path, obj.Bytes(), 0o755)
	require.NoError(t, err, "must write test ELF object")

	return path
}

// Bytes encodes the object as a minimal little-endian ELF64 shared object.
// It carries a dynamic section with the declared entries and, if Interp is
// set, a PT_INTERP program header. Without any dynamic entries no dynamic
// section is written at all, which makes the object statically linked.
func (e TestELF) Bytes() []byte {
	const (
		ehSize       = 64
		phSize       = 56
		shSize       = 64
		dynEntrySize = 16
	)

	// String table starts with the terminating NUL of the empty string.
	strtab := []byte{0}
	addString := func(s string) uint64 {
		off := uint64(len(strtab))
		strtab = append(strtab, s...)
		strtab = append(strtab, 0)

		return off
	}

	var dyn []elf.Dyn64

	for _, needed := range e.Needed {
		dyn = append(dyn, elf.Dyn64{
			Tag: int64(elf.DT_NEEDED),
			Val: addString(needed),
		})
	}

	if e.SoName != "" {
		dyn = append(dyn, elf.Dyn64{
			Tag: int64(elf.DT_SONAME),
			Val: addString(e.SoName),
		})
	}

	if dyn != nil {
		dyn = append(dyn, elf.Dyn64{Tag: int64(elf.DT_NULL)})
	}

	var (
		phnum  int
		phoff  uint64
		interp []byte
	)

	if e.Interp != "" {
		phnum = 1
		phoff = ehSize
		interp = append([]byte(e.Interp), 0)
	}

	interpOff := uint64(ehSize + phnum*phSize)
	strtabOff := interpOff + uint64(len(interp))
	dynOff := strtabOff + uint64(len(strtab))
	dynSize := uint64(len(dyn) * dynEntrySize)

	var (
		shnum int
		shoff uint64
	)

	if dyn != nil {
		shnum = 3
		shoff = dynOff + dynSize
	}

	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	header := elf.Header64{
		Ident:     ident,
		Type:      uint16(elf.ET_DYN),
		Machine:   uint16(elf.EM_X86_64),
		Version:   uint32(elf.EV_CURRENT),
		Phoff:     phoff,
		Shoff:     shoff,
		Ehsize:    ehSize,
		Phentsize: phSize,
		Phnum:     uint16(phnum),
		Shentsize: shSize,
		Shnum:     uint16(shnum),
	}

	buf := new(bytes.Buffer)

	_ = binary.Write(buf, binary.LittleEndian, header)

	if phnum > 0 {
		_ = binary.Write(buf, binary.LittleEndian, elf.Prog64{
			Type:   uint32(elf.PT_INTERP),
			Off:    interpOff,
			Filesz: uint64(len(interp)),
			Memsz:  uint64(len(interp)),
		})
	}

	buf.Write(interp)
	buf.Write(strtab)

	_ = binary.Write(buf, binary.LittleEndian, dyn)

	if shnum > 0 {
		_ = binary.Write(buf, binary.LittleEndian, []elf.Section64{
			{},
			{
				Type:      uint32(elf.SHT_STRTAB),
				Off:       strtabOff,
				Size:      uint64(len(strtab)),
				Addralign: 1,
			},
			{
				Type:      uint32(elf.SHT_DYNAMIC),
				Off:       dynOff,
				Size:      dynSize,
				Link:      1,
				Addralign: 8,
				Entsize:   dynEntrySize,
			},
		})
	}

	return buf.Bytes()
}
