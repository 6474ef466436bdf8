// Package chatbox is the officer chat widget: pure state, rendering helpers,
// an API client and the bubbletea program that ties them together.
package chatbox

import (
	"fmt"
	"strconv"

	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/push"
)

// State is everything the widget shows. The viewer's duty state is passed in
// rather than read from a global store.
type State struct {
	Messages  []*models.OfficerChatView
	Loading   bool
	Minimized bool
	Viewer    *models.Unit
}

// Eligible reports whether the viewer is on duty and the widget should show.
func (s *State) Eligible() bool {
	return s.Viewer != nil && s.Viewer.Status().OnDuty()
}

// SetViewer returns true when the widget just became visible, which is when
// history should be loaded.
func (s *State) SetViewer(u *models.Unit) bool {
	was := s.Eligible()
	s.Viewer = u
	return !was && s.Eligible()
}

func (s *State) ReplaceMessages(list []*models.OfficerChatView) {
	if list == nil {
		list = []*models.OfficerChatView{}
	}
	s.Messages = list
}

func (s *State) index(id int64) int {
	for i, m := range s.Messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// ApplyCreated appends msg unless the widget is hidden or already has it.
func (s *State) ApplyCreated(msg *models.OfficerChatView) bool {
	if msg == nil || !s.Eligible() || s.index(msg.ID) >= 0 {
		return false
	}
	s.Messages = append(s.Messages, msg)
	return true
}

func (s *State) ApplyDeleted(id int64) bool {
	if !s.Eligible() {
		return false
	}
	return s.RemoveLocal(id)
}

// RemoveLocal drops id after our own delete request succeeded.
func (s *State) RemoveLocal(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.Messages = append(s.Messages[:i:i], s.Messages[i+1:]...)
	return true
}

// ApplyEvent feeds a push event into the state. It reports whether the
// message list changed.
func (s *State) ApplyEvent(e *push.Event) (bool, error) {
	switch e.Name {
	case push.EventOfficerChat:
		var msg models.OfficerChatView
		if err := e.Decode(&msg); err != nil {
			return false, fmt.Errorf("decode %s: %w", e.Name, err)
		}
		return s.ApplyCreated(&msg), nil
	case push.EventOfficerChatDeleted:
		var raw string
		if err := e.Decode(&raw); err != nil {
			return false, fmt.Errorf("decode %s: %w", e.Name, err)
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return false, fmt.Errorf("decode %s: %w", e.Name, err)
		}
		return s.ApplyDeleted(id), nil
	default:
		return false, nil
	}
}

func (s *State) IsOwn(msg *models.OfficerChatView) bool {
	if msg == nil {
		return false
	}
	return s.Viewer.Is(msg.Creator.Unit)
}

// Badge is the count shown on the minimized launcher.
func (s *State) Badge() string {
	n := len(s.Messages)
	switch {
	case n == 0:
		return ""
	case n > 9:
		return "9+"
	default:
		return strconv.Itoa(n)
	}
}
