package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/movies/pkg/app/styles"
)

const searchPlaceholder = "Search through thousands of movies..."

// Search is a controlled text input. It holds no search state of its
// own: every edit is reported to the owner through onChange, and the
// owner's value is pushed back with SetValue.
type Search struct {
	input    textinput.Model
	onChange func(string)
}

func NewSearch(term string, onChange func(string)) *Search {
	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(term)
	ti.Focus()

	return &Search{input: ti, onChange: onChange}
}

// SetValue syncs the input with the owner's term.
func (s *Search) SetValue(term string) {
	if s.input.Value() != term {
		s.input.SetValue(term)
	}
}

func (s *Search) Value() string {
	return s.input.Value()
}

func (s *Search) SetWidth(width int) {
	if width > 10 {
		s.input.Width = width
	}
}

// Update forwards msg to the input and reports the raw value whenever it
// changed. There is no debouncing and no separate submit event.
func (s *Search) Update(msg tea.Msg) tea.Cmd {
	before := s.input.Value()

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if after := s.input.Value(); after != before && s.onChange != nil {
		s.onChange(after)
	}
	return cmd
}

func (s *Search) View() string {
	style := styles.InputStyle
	if s.input.Focused() {
		style = styles.FocusedInputStyle
	}
	return style.Render(s.input.View())
}
