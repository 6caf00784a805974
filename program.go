package renderable

import (
	"fmt"
)

// Program describes a shader program owned by the renderer.
// Sources are kept as text; compiling them is the renderer's business.
type Program struct {
	Name     string
	Vertex   string
	Fragment string
	Uniforms []string
}

// ProgramHandle is a non-owning reference into a ProgramTable.
// The zero handle refers to no program.
type ProgramHandle struct {
	index      uint32
	generation uint32
}

func (h ProgramHandle) IsZero() bool {
	return h == ProgramHandle{}
}

func (h ProgramHandle) String() string {
	if h.IsZero() {
		return "program(none)"
	}
	return fmt.Sprintf("program(%d#%d)", h.index, h.generation)
}

type programSlot struct {
	program    Program
	generation uint32
	live       bool
}

// ProgramTable owns programs and hands out generation-checked handles.
// A released slot may be reused; handles to the old occupant stop resolving.
type ProgramTable struct {
	slots  []programSlot
	free   []uint32
	byName map[string]uint32
}

func NewProgramTable() *ProgramTable {
	return &ProgramTable{
		// Slot 0 is reserved so the zero handle never resolves.
		slots:  make([]programSlot, 1),
		byName: make(map[string]uint32),
	}
}

func (t *ProgramTable) Register(p Program) (ProgramHandle, error) {
	if _, ok := t.byName[p.Name]; ok {
		return ProgramHandle{}, fmt.Errorf("register %q: %w", p.Name, ErrDuplicateProgram)
	}

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, programSlot{})
	}

	slot := &t.slots[idx]
	slot.generation++
	slot.program = p
	slot.live = true
	t.byName[p.Name] = idx

	return ProgramHandle{index: idx, generation: slot.generation}, nil
}

func (t *ProgramTable) Lookup(h ProgramHandle) (Program, bool) {
	if h.IsZero() || int(h.index) >= len(t.slots) {
		return Program{}, false
	}
	slot := t.slots[h.index]
	if !slot.live || slot.generation != h.generation {
		return Program{}, false
	}
	return slot.program, true
}

func (t *ProgramTable) LookupName(name string) (ProgramHandle, bool) {
	idx, ok := t.byName[name]
	if !ok {
		return ProgramHandle{}, false
	}
	return ProgramHandle{index: idx, generation: t.slots[idx].generation}, true
}

// Release frees the slot. It reports false for handles that no longer resolve.
func (t *ProgramTable) Release(h ProgramHandle) bool {
	p, ok := t.Lookup(h)
	if !ok {
		return false
	}
	slot := &t.slots[h.index]
	slot.live = false
	slot.program = Program{}
	delete(t.byName, p.Name)
	t.free = append(t.free, h.index)
	return true
}

func (t *ProgramTable) Len() int {
	return len(t.byName)
}
