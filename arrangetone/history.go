package main

import "github.com/google/uuid"

// a deep copy of the undoable parts of a project
type historyState struct {
	tracks   []*track
	patterns []*pattern
}

// bounded undo/redo stack of project snapshots, pushed once per committed
// gesture or menu edit
type history struct {
	past   []historyState
	future []historyState
	limit  int
}

func newHistory(limit int) *history {
	return &history{limit: limit}
}

func snapshot(p *project) historyState {
	st := historyState{}
	for _, t := range p.Tracks {
		t2 := &track{}
		*t2 = *t
		st.tracks = append(st.tracks, t2)
	}
	for _, pat := range p.Patterns {
		st.patterns = append(st.patterns, pat.clone())
	}
	return st
}

func restore(p *project, st historyState) {
	p.Tracks = st.tracks
	p.Patterns = st.patterns
	// drop selected ids that no longer exist
	var sel []uuid.UUID
	for _, id := range p.selection {
		if p.patternByID(id) != nil {
			sel = append(sel, id)
		}
	}
	p.selection = sel
}

// record the current state as an undo point, clearing any redo branch
func (h *history) push(p *project) {
	h.past = append(h.past, snapshot(p))
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = h.past[1:]
	}
	h.future = nil
}

func (h *history) undo(p *project) bool {
	if len(h.past) == 0 {
		return false
	}
	h.future = append(h.future, snapshot(p))
	st := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	restore(p, st)
	return true
}

func (h *history) redo(p *project) bool {
	if len(h.future) == 0 {
		return false
	}
	h.past = append(h.past, snapshot(p))
	st := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	restore(p, st)
	return true
}
