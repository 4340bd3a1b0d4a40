package main

import (
	"compress/zlib"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

const defaultTrackCount = 4

// fields in these types are exported to expose them to the JSON encoder

// an ordered lane; its vertical index is its position in project.Tracks
type track struct {
	ID   uuid.UUID
	Name string
}

// a placed musical region on a track, in beats
type pattern struct {
	ID       uuid.UUID
	TrackID  uuid.UUID
	Name     string
	Color    uint32 `json:",omitempty"`
	Muted    bool   `json:",omitempty"`
	Position float64
	Duration float64
}

// return a pointer to a copy of the pattern
func (p *pattern) clone() *pattern {
	p2 := &pattern{}
	*p2 = *p
	return p2
}

// snapshot of pattern geometry taken at resize start; continuous resize
// commits are computed from these originals rather than accumulated
type resizeBaseline struct {
	pos, dur float64
}

// the backing store for tracks and patterns. All gesture commits land here
// through the mutation methods below; the gesture engines themselves never
// write to it.
type project struct {
	Title    string
	Tracks   []*track
	Patterns []*pattern

	selection  []uuid.UUID // ephemeral, not saved
	resizeBase map[uuid.UUID]resizeBaseline
	created    int // counts pattern names handed out
}

func newProject() *project {
	p := &project{Title: "Untitled"}
	for i := 0; i < defaultTrackCount; i++ {
		p.addTrack(fmt.Sprintf("Track %d", i+1))
	}
	return p
}

// decode project data; if successful, the current data is replaced
func (p *project) read(r io.Reader) error {
	comp, err := zlib.NewReader(r)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(comp)
	loaded := &project{}
	if err := dec.Decode(loaded); err != nil {
		return err
	}
	if err := comp.Close(); err != nil {
		return err
	}
	*p = *loaded
	p.created = len(p.Patterns)
	return nil
}

// encode project data
func (p *project) write(w io.Writer) error {
	comp := zlib.NewWriter(w)
	enc := json.NewEncoder(comp)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return comp.Close()
}

// -- tracks --

func (p *project) addTrack(name string) *track {
	t := &track{ID: uuid.New(), Name: name}
	p.Tracks = append(p.Tracks, t)
	return t
}

// remove a track and its patterns; the last track can't be deleted
func (p *project) deleteTrack(id uuid.UUID) {
	if len(p.Tracks) <= 1 {
		return
	}
	for i, t := range p.Tracks {
		if t.ID == id {
			p.Tracks = append(p.Tracks[:i], p.Tracks[i+1:]...)
			break
		}
	}
	var ids []uuid.UUID
	for _, pat := range p.Patterns {
		if pat.TrackID == id {
			ids = append(ids, pat.ID)
		}
	}
	p.deletePatterns(ids)
}

// move a track up (-1) or down (+1) in the lane order
func (p *project) shiftTrack(id uuid.UUID, offset int) {
	i := p.trackIndex(id)
	j := i + offset
	if i < 0 || j < 0 || j >= len(p.Tracks) {
		return
	}
	p.Tracks[i], p.Tracks[j] = p.Tracks[j], p.Tracks[i]
}

// return a track's vertical index, or -1 if it isn't in the project
func (p *project) trackIndex(id uuid.UUID) int {
	for i, t := range p.Tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (p *project) trackByID(id uuid.UUID) *track {
	for _, t := range p.Tracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// -- patterns --

func (p *project) patternByID(id uuid.UUID) *pattern {
	for _, pat := range p.Patterns {
		if pat.ID == id {
			return pat
		}
	}
	return nil
}

// return the pattern covering a beat on a track, if any
func (p *project) patternAt(trackID uuid.UUID, beat float64) *pattern {
	for _, pat := range p.Patterns {
		if pat.TrackID == trackID && beat >= pat.Position &&
			beat < pat.Position+pat.Duration {
			return pat
		}
	}
	return nil
}

func (p *project) addPattern(trackID uuid.UUID, pos, dur float64) *pattern {
	p.created++
	pat := &pattern{
		ID:       uuid.New(),
		TrackID:  trackID,
		Name:     fmt.Sprintf("Pattern %d", p.created),
		Color:    trackColor(p.trackIndex(trackID)),
		Position: clampOffset(pos),
		Duration: dur,
	}
	p.Patterns = append(p.Patterns, pat)
	return pat
}

// clone a pattern in place; the original keeps its identity so an in-flight
// drag keeps moving the original while the copy stays behind
func (p *project) duplicatePattern(id uuid.UUID) *pattern {
	pat := p.patternByID(id)
	if pat == nil {
		return nil
	}
	dup := pat.clone()
	dup.ID = uuid.New()
	p.Patterns = append(p.Patterns, dup)
	return dup
}

func (p *project) deletePatterns(ids []uuid.UUID) {
	for _, id := range ids {
		for i, pat := range p.Patterns {
			if pat.ID == id {
				p.Patterns = append(p.Patterns[:i], p.Patterns[i+1:]...)
				break
			}
		}
		p.deselect(id)
	}
}

// apply a committed horizontal drag. When the moved pattern is part of a
// multi-selection the delta gangs across every selected pattern; the dragged
// pattern itself lands exactly on its snapped position.
func (p *project) movePattern(id uuid.UUID, pos, delta float64) {
	pat := p.patternByID(id)
	if pat == nil {
		return
	}
	if p.isSelected(id) && len(p.selection) > 1 {
		for _, sid := range p.selection {
			if sid == id {
				continue
			}
			if sp := p.patternByID(sid); sp != nil {
				sp.Position = clampOffset(sp.Position + delta)
			}
		}
	}
	pat.Position = clampOffset(pos)
}

func (p *project) setPatternTrack(id, trackID uuid.UUID) {
	if pat := p.patternByID(id); pat != nil && p.trackByID(trackID) != nil {
		pat.TrackID = trackID
	}
}

// capture gesture-start geometry for a pattern and any ganged selection
func (p *project) beginResize(id uuid.UUID) {
	p.resizeBase = map[uuid.UUID]resizeBaseline{}
	ids := []uuid.UUID{id}
	if p.isSelected(id) && len(p.selection) > 1 {
		ids = p.selection
	}
	for _, sid := range ids {
		if pat := p.patternByID(sid); pat != nil {
			p.resizeBase[sid] = resizeBaseline{pat.Position, pat.Duration}
		}
	}
}

func (p *project) endResize() {
	p.resizeBase = nil
}

// apply a committed resize. The dragged pattern takes the snapped duration;
// ganged members scale their durations by the same factor, while left-edge
// position shifts are additive so every member's right edge stays fixed.
func (p *project) applyResize(id uuid.UUID, dur float64, edge resizeEdge,
	startDur, startPos, minDur float64) {
	pat := p.patternByID(id)
	if pat == nil || startDur <= 0 {
		return
	}
	if dur < minDur {
		dur = minDur
	}
	posDelta := 0.0
	if edge == edgeLeft {
		posDelta = startDur - dur
	}
	pat.Duration = dur
	pat.Position = clampOffset(startPos + posDelta)
	factor := dur / startDur
	for sid, base := range p.resizeBase {
		if sid == id {
			continue
		}
		sp := p.patternByID(sid)
		if sp == nil {
			continue
		}
		d := base.dur * factor
		if d < minDur {
			d = minDur
		}
		sp.Duration = d
		sp.Position = clampOffset(base.pos + posDelta)
	}
}

// -- selection --

func (p *project) isSelected(id uuid.UUID) bool {
	for _, sid := range p.selection {
		if sid == id {
			return true
		}
	}
	return false
}

// non-multi select replaces the selection unless the pattern is already a
// member, so that dragging one member of a multi-selection keeps the gang
// intact; multi select toggles membership
func (p *project) selectPattern(id uuid.UUID, multi bool) {
	if !multi {
		if !p.isSelected(id) {
			p.selection = []uuid.UUID{id}
		}
		return
	}
	if p.isSelected(id) {
		p.deselect(id)
	} else {
		p.selection = append(p.selection, id)
	}
}

func (p *project) deselect(id uuid.UUID) {
	for i, sid := range p.selection {
		if sid == id {
			p.selection = append(p.selection[:i], p.selection[i+1:]...)
			return
		}
	}
}

func (p *project) setSelection(ids []uuid.UUID) {
	p.selection = ids
}

func (p *project) clearSelection() {
	p.selection = nil
}

func (p *project) selectAll() {
	p.selection = nil
	for _, pat := range p.Patterns {
		p.selection = append(p.selection, pat.ID)
	}
}
