package schedule

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

// Durations are the offered slot lengths in minutes.
var Durations = []int{15, 30, 60}

// DefaultDuration is the initial slot length.
const DefaultDuration = 30

var (
	ErrIncomplete       = errors.New("select a start and end time")
	ErrEndNotAfterStart = errors.New("end time must be after start time")
	ErrConflict         = errors.New("this time slot conflicts with an existing slot")
	ErrUnknownSlot      = errors.New("time slot not found")
)

// Picker is the state of the time-range picker. It never mutates the slot
// slice it was given; every change returns a new slice.
type Picker struct {
	slots     []Slot
	day       string
	duration  int
	start     string
	end       string
	editingID string

	newID            func() string
	onDurationChange func(int)
}

// Option configures a Picker.
type Option func(*Picker)

// WithIDGenerator replaces the uuid-based slot id generator.
func WithIDGenerator(fn func() string) Option {
	return func(p *Picker) { p.newID = fn }
}

// WithDurationCallback is notified when the slot duration changes.
func WithDurationCallback(fn func(int)) Option {
	return func(p *Picker) { p.onDurationChange = fn }
}

// NewPicker returns a picker over slots for day.
func NewPicker(slots []Slot, day string, opts ...Option) *Picker {
	p := &Picker{
		slots:    slices.Clone(slots),
		day:      day,
		duration: DefaultDuration,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Slots returns the saved slots.
func (p *Picker) Slots() []Slot { return slices.Clone(p.slots) }

// SetSlots replaces the saved slots, e.g. after an undo.
func (p *Picker) SetSlots(slots []Slot) {
	p.slots = slices.Clone(slots)
	if p.editingID != "" && !slices.ContainsFunc(p.slots, func(s Slot) bool { return s.ID == p.editingID }) {
		p.CancelEdit()
	}
}

// DaySlots returns the saved slots of the selected day.
func (p *Picker) DaySlots() []Slot {
	var out []Slot
	for _, s := range p.slots {
		if s.Day == p.day {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b Slot) int {
		am, _ := Minutes(a.Start)
		bm, _ := Minutes(b.Start)
		return am - bm
	})
	return out
}

// Day returns the selected day.
func (p *Picker) Day() string { return p.day }

// SetDay selects the day new slots are added to.
func (p *Picker) SetDay(day string) { p.day = day }

// Duration returns the step between selectable times.
func (p *Picker) Duration() int { return p.duration }

// SetDuration changes the step, regenerating the options and clearing any
// unconfirmed start/end selection. Saved slots are untouched.
func (p *Picker) SetDuration(minutes int) {
	if minutes <= 0 {
		return
	}
	p.duration = minutes
	p.start = ""
	p.end = ""
	if p.onDurationChange != nil {
		p.onDurationChange(minutes)
	}
}

// Options returns the selectable times for the current duration.
func (p *Picker) Options() []string {
	return TimeOptions(p.duration)
}

// EndDisabled reports whether an end option is unavailable because it is
// not after the selected start.
func (p *Picker) EndDisabled(clock string) bool {
	if p.start == "" {
		return false
	}
	s, err := Minutes(p.start)
	if err != nil {
		return false
	}
	e, err := Minutes(clock)
	return err != nil || e <= s
}

// Start returns the in-progress start time.
func (p *Picker) Start() string { return p.start }

// End returns the in-progress end time.
func (p *Picker) End() string { return p.end }

// SelectStart sets the in-progress start time.
func (p *Picker) SelectStart(clock string) { p.start = clock }

// SelectEnd sets the in-progress end time unless it is disabled.
func (p *Picker) SelectEnd(clock string) bool {
	if p.EndDisabled(clock) {
		return false
	}
	p.end = clock
	return true
}

// Editing returns the id of the slot being edited, or "".
func (p *Picker) Editing() string { return p.editingID }

// StartEdit loads a saved slot into the inputs.
func (p *Picker) StartEdit(id string) error {
	i := p.index(id)
	if i < 0 {
		return ErrUnknownSlot
	}
	p.editingID = id
	p.day = p.slots[i].Day
	p.start = p.slots[i].Start
	p.end = p.slots[i].End
	return nil
}

// CancelEdit leaves edit mode and clears the inputs.
func (p *Picker) CancelEdit() {
	p.editingID = ""
	p.start = ""
	p.end = ""
}

// Submit validates the inputs and either updates the edited slot or appends
// a new one. On failure the state is unchanged.
func (p *Picker) Submit() ([]Slot, error) {
	if p.start == "" || p.end == "" {
		return nil, ErrIncomplete
	}
	s, err := Minutes(p.start)
	if err != nil {
		return nil, err
	}
	e, err := Minutes(p.end)
	if err != nil {
		return nil, err
	}
	if e <= s {
		return nil, ErrEndNotAfterStart
	}

	day := p.day
	if p.editingID != "" {
		i := p.index(p.editingID)
		if i < 0 {
			p.CancelEdit()
			return nil, ErrUnknownSlot
		}
		day = p.slots[i].Day
	}
	if Conflicts(p.slots, day, p.start, p.end, p.editingID) {
		return nil, ErrConflict
	}

	next := slices.Clone(p.slots)
	if p.editingID != "" {
		i := p.index(p.editingID)
		next[i].Start = p.start
		next[i].End = p.end
	} else {
		next = append(next, Slot{ID: p.newID(), Day: day, Start: p.start, End: p.end})
	}

	p.slots = next
	p.CancelEdit()
	return p.Slots(), nil
}

// Remove deletes a saved slot. Removing the slot being edited also leaves
// edit mode.
func (p *Picker) Remove(id string) ([]Slot, error) {
	i := p.index(id)
	if i < 0 {
		return nil, ErrUnknownSlot
	}
	p.slots = slices.Delete(slices.Clone(p.slots), i, i+1)
	if p.editingID == id {
		p.CancelEdit()
	}
	return p.Slots(), nil
}

func (p *Picker) index(id string) int {
	return slices.IndexFunc(p.slots, func(s Slot) bool { return s.ID == id })
}
