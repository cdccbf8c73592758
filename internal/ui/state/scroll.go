package state

import (
	"github.com/atomicstack/bootmenu/internal/logging/events"
	"github.com/atomicstack/bootmenu/internal/menu"
)

// Mode selects how vertical movement behaves.
type Mode int

const (
	// Text is a single vertical list.
	Text Mode = iota
	// Icons is the two-row main menu: loaders in row 0, tools in row 1.
	Icons
)

// Movement is one navigation command.
type Movement int

const (
	None Movement = iota
	LineUp
	LineDown
	LineLeft
	LineRight
	PageUp
	PageDown
	First
	Last
)

var movementNames = [...]string{"none", "up", "down", "left", "right", "pgup", "pgdown", "first", "last"}

func (m Movement) String() string {
	if int(m) >= 0 && int(m) < len(movementNames) {
		return movementNames[m]
	}
	return "unknown"
}

// Scroll tracks the selection and the visible window of a menu screen.
//
// While the paint flags are clear, FirstVisible <= Current <= LastVisible
// and Current <= MaxIndex.
type Scroll struct {
	Current      int
	Previous     int
	FirstVisible int
	LastVisible  int
	MaxVisible   int
	MaxIndex     int
	FinalRow0    int
	InitialRow1  int
	Mode         Mode

	PaintAll       bool
	PaintSelection bool

	// Name labels trace events.
	Name string
}

// Init resets the state for count entries. measured is the capacity the
// renderer can show; a positive visibleCapacity below it takes precedence.
func (s *Scroll) Init(count, visibleCapacity, measured int) {
	s.Current, s.Previous = 0, 0
	s.MaxIndex = count - 1
	s.FirstVisible = 0
	s.MaxVisible = measured
	if visibleCapacity > 0 && visibleCapacity < s.MaxVisible {
		s.MaxVisible = visibleCapacity
	}
	s.PaintAll = true
	s.PaintSelection = false
	s.LastVisible = s.FirstVisible + s.MaxVisible - 1
}

// Adjust slides the visible window so the selection is inside it.
func (s *Scroll) Adjust() {
	if s.Current > s.LastVisible {
		s.LastVisible = s.Current
		s.FirstVisible = max(0, 1+s.Current-s.MaxVisible)
		s.PaintAll = true
	}
	if s.Current < s.FirstVisible {
		s.FirstVisible = s.Current
		s.LastVisible = s.Current + s.MaxVisible - 1
		s.PaintAll = true
	}
}

// IdentifyRows finds the last row-0 entry and the first row-1 entry. In
// Icons mode the window never exceeds the row-0 entries.
func (s *Scroll) IdentifyRows(screen *menu.Screen) {
	s.FinalRow0 = 0
	s.InitialRow1 = s.MaxIndex
	if screen != nil {
		for i := 0; i <= s.MaxIndex && i < len(screen.Entries); i++ {
			switch screen.Entries[i].Row {
			case 0:
				s.FinalRow0 = i
			case 1:
				if s.InitialRow1 > i {
					s.InitialRow1 = i
				}
			}
		}
	}
	if s.Mode == Icons && s.MaxVisible > s.FinalRow0+1 {
		s.MaxVisible = s.FinalRow0 + 1
		s.LastVisible = s.FirstVisible + s.MaxVisible - 1
	}
	if s.LastVisible > s.MaxIndex {
		s.LastVisible = max(s.MaxIndex, s.FirstVisible)
	}
}

// Move applies one navigation command.
func (s *Scroll) Move(cmd Movement) {
	s.Previous = s.Current

	switch cmd {
	case LineLeft:
		if s.Current > s.lowerBound() {
			s.Current--
		}
	case LineRight:
		if s.Current < s.upperBound() {
			s.Current++
		}
	case LineUp:
		if s.Mode == Icons {
			if s.Current >= s.InitialRow1 {
				if s.MaxIndex > s.InitialRow1 {
					s.Current = s.FirstVisible + (s.LastVisible-s.FirstVisible)*(s.Current-s.InitialRow1)/(s.MaxIndex-s.InitialRow1)
				} else {
					s.Current = s.FirstVisible
				}
			}
		} else if s.Current > 0 {
			s.Current--
		}
	case LineDown:
		if s.Mode == Icons {
			if s.Current <= s.FinalRow0 {
				if s.LastVisible > s.FirstVisible {
					s.Current = s.InitialRow1 + (s.MaxIndex-s.InitialRow1)*(s.Current-s.FirstVisible)/(s.LastVisible-s.FirstVisible)
				} else {
					s.Current = s.InitialRow1
				}
			}
		} else if s.Current < s.MaxIndex {
			s.Current++
		}
	case PageUp:
		switch {
		case s.Current <= s.FinalRow0:
			s.Current -= s.MaxVisible
		case s.Current == s.InitialRow1:
			s.Current = s.FinalRow0
		default:
			s.Current = s.InitialRow1
		}
		if s.Current < 0 {
			s.Current = 0
		}
	case PageDown:
		switch {
		case s.Current < s.FinalRow0:
			s.Current += s.MaxVisible
			if s.Current > s.FinalRow0 {
				s.Current = s.FinalRow0
			}
		case s.Current == s.FinalRow0:
			s.Current++
		default:
			s.Current = s.MaxIndex
		}
		if s.Current > s.MaxIndex {
			s.Current = s.MaxIndex
		}
	case First:
		if s.Current > 0 {
			s.PaintAll = true
			s.Current = 0
		}
	case Last:
		if s.Current < s.MaxIndex {
			s.PaintAll = true
			s.Current = s.MaxIndex
		}
	}

	if s.Mode == Text {
		s.Adjust()
	}
	if !s.PaintAll && s.Current != s.Previous {
		s.PaintSelection = true
	}
	s.LastVisible = s.FirstVisible + s.MaxVisible - 1
	events.UI.MenuCursor(s.Name, cmd.String(), s.Current, s.FirstVisible, s.LastVisible)
}

// lowerBound and upperBound confine horizontal movement to the current
// tier in Icons mode.
func (s *Scroll) lowerBound() int {
	if s.Mode == Icons && s.Current >= s.InitialRow1 && s.InitialRow1 > s.FinalRow0 {
		return s.InitialRow1
	}
	return 0
}

func (s *Scroll) upperBound() int {
	if s.Mode == Icons && s.Current <= s.FinalRow0 && s.InitialRow1 > s.FinalRow0 {
		return s.FinalRow0
	}
	return s.MaxIndex
}

// Visible reports whether index lies in the visible window.
func (s *Scroll) Visible(index int) bool {
	return index >= s.FirstVisible && index <= s.LastVisible
}
