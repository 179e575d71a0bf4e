// Package pager maps fixed-size pages between a file on disk and
// in-memory buffers. Pages are created lazily on first access and
// written back only on Close; the pager is the sole owner of the file
// handle and of every page buffer it hands out.
package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	// PageSize is the fixed width, in bytes, of every page.
	PageSize = 4096
	// MaxPages bounds the pager's in-memory page table.
	MaxPages = 100
)

// Page is one 4096-byte node buffer plus its bookkeeping.
type Page struct {
	Data [PageSize]byte
	ID   uint32
}

// Pager owns a file handle and a slice of page slots indexed by page
// id, grown on demand by GetPage up to MaxPages.
type Pager struct {
	file   *os.File
	Pages  []*Page // nil entries are unoccupied slots
	length int64   // file length as of Open, in bytes
}

// Open opens (creating if absent) filename read-write and measures its
// length. It rejects files whose length is not a whole number of
// pages: such a file is corrupt and there is no way to recover a
// partial trailing page.
func Open(filename string) (*Pager, error) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "pager: open db file")
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "pager: stat db file")
	}

	length := fi.Size()
	if length%PageSize != 0 {
		f.Close()
		return nil, errors.Errorf("pager: db file is not a whole number of pages (length=%d)", length)
	}

	npages := int(length / PageSize)
	return &Pager{
		file:   f,
		Pages:  make([]*Page, npages),
		length: length,
	}, nil
}

// NumPages reports how many page slots the pager currently tracks,
// occupied or not.
func (p *Pager) NumPages() uint32 {
	return uint32(len(p.Pages))
}

// UnusedPageID returns the id the next allocation would receive. It is
// a pure peek: the id is not reserved until GetPage(id) is actually
// called.
func (p *Pager) UnusedPageID() uint32 {
	return p.NumPages()
}

// GetPage returns a view of page id, allocating and (if the page
// exists on disk) loading it on first access. The returned pointer is
// owned by the pager and remains valid until the next structural
// pager operation; callers must not hold two mutable views of the
// same page at once.
func (p *Pager) GetPage(id uint32) (*Page, error) {
	if id >= MaxPages {
		return nil, errors.Errorf("pager: page %d out of bounds (max %d)", id, MaxPages)
	}

	if id < p.NumPages() && p.Pages[id] != nil {
		return p.Pages[id], nil
	}

	pg := &Page{ID: id}

	// The page might already exist on disk even though this is its
	// first in-memory access (e.g. reopening an existing file).
	existingPages := uint32((p.length + PageSize - 1) / PageSize)
	if id <= existingPages {
		if _, err := p.file.Seek(int64(id)*PageSize, io.SeekStart); err != nil {
			return nil, errors.Wrapf(err, "pager: seek to page %d", id)
		}
		if _, err := io.ReadFull(p.file, pg.Data[:]); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return nil, errors.Wrapf(err, "pager: read page %d", id)
		}
	}

	if id >= p.NumPages() {
		grown := make([]*Page, id+1)
		copy(grown, p.Pages)
		p.Pages = grown
	}
	p.Pages[id] = pg
	return pg, nil
}

// Flush writes page id's full buffer back to disk. It is fatal-grade
// to flush a page that was never loaded; callers should treat the
// returned error as unrecoverable.
func (p *Pager) Flush(id uint32) error {
	if id >= p.NumPages() || p.Pages[id] == nil {
		return errors.Errorf("pager: tried to flush empty page slot %d", id)
	}
	pg := p.Pages[id]

	if _, err := p.file.Seek(int64(id)*PageSize, io.SeekStart); err != nil {
		return errors.Wrapf(err, "pager: seek to page %d", id)
	}
	if _, err := p.file.Write(pg.Data[:]); err != nil {
		return errors.Wrapf(err, "pager: write page %d", id)
	}
	return nil
}

// Close flushes every occupied slot unconditionally and closes the
// file. There is no per-page dirty tracking: every page buffer the
// pager has ever handed out is written back, since any of them may
// have been mutated in place by the B+ tree layer. After Close the
// pager must not be used again.
func (p *Pager) Close() error {
	for id, pg := range p.Pages {
		if pg == nil {
			continue
		}
		if err := p.Flush(uint32(id)); err != nil {
			return err
		}
	}
	return errors.Wrap(p.file.Close(), "pager: close db file")
}
