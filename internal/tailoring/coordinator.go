package tailoring

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"job-assistant/internal/resumeclient"
)

// Slot names one of the two upload targets.
type Slot string

const (
	SlotResume         Slot = "resume"
	SlotJobDescription Slot = "job-description"
)

// UploadHint is advisory only; files are accepted as-is.
const UploadHint = "PDF, DOCX up to 5MB"

var ErrUnknownSlot = errors.New("unknown upload slot")

// ParseSlot maps a path value onto a Slot.
func ParseSlot(raw string) (Slot, error) {
	switch Slot(strings.ToLower(strings.TrimSpace(raw))) {
	case SlotResume:
		return SlotResume, nil
	case SlotJobDescription:
		return SlotJobDescription, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSlot, raw)
}

// File is an uploaded document held for the life of a page session.
type File struct {
	Name string
	Size int64
	Data []byte
}

// NewFile wraps uploaded bytes.
func NewFile(name string, data []byte) *File {
	return &File{Name: name, Size: int64(len(data)), Data: data}
}

// DisplaySize renders the size in kilobytes with two decimals.
func (f *File) DisplaySize() string {
	return fmt.Sprintf("%.2f KB", float64(f.Size)/1024)
}

func (f *File) document() resumeclient.Document {
	return resumeclient.Document{Name: f.Name, Data: f.Data}
}

// Pair is the current resume and job description. Either may be nil.
type Pair struct {
	Resume         *File
	JobDescription *File
}

// Complete reports whether both slots hold a file.
func (p Pair) Complete() bool {
	return p.Resume != nil && p.JobDescription != nil
}

// Coordinator owns the two upload slots and reports every change to its owner.
type Coordinator struct {
	mu     sync.Mutex
	pair   Pair
	notify func(Pair)
}

// NewCoordinator returns an empty coordinator. notify receives the pair after
// every mutation and may be nil.
func NewCoordinator(notify func(Pair)) *Coordinator {
	return &Coordinator{notify: notify}
}

// SetFile replaces the file in slot. A nil file clears the slot.
func (c *Coordinator) SetFile(slot Slot, file *File) error {
	return c.mutate(func(p *Pair) error {
		switch slot {
		case SlotResume:
			p.Resume = file
		case SlotJobDescription:
			p.JobDescription = file
		default:
			return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
		}
		return nil
	})
}

// RemoveFile clears slot.
func (c *Coordinator) RemoveFile(slot Slot) error {
	return c.SetFile(slot, nil)
}

// Clear empties both slots.
func (c *Coordinator) Clear() {
	_ = c.mutate(func(p *Pair) error {
		*p = Pair{}
		return nil
	})
}

// Pair returns the current pair.
func (c *Coordinator) Pair() Pair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pair
}

func (c *Coordinator) mutate(fn func(*Pair) error) error {
	c.mu.Lock()
	next := c.pair
	if err := fn(&next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.pair = next
	c.mu.Unlock()

	// outside the lock: the owner may read back or clear the pair
	if c.notify != nil {
		c.notify(next)
	}
	return nil
}
