package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#AB8BFF")
	Secondary  = lipgloss.Color("#D6C7FF")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Muted      = lipgloss.Color("#546E7A")
	Foreground = lipgloss.Color("#EEFFFF")
	Skeleton   = lipgloss.Color("#1E1B3A")

	// Border styles
	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Base styles
var (
	// Hero heading
	HeroStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Bold(true).
			Align(lipgloss.Center)

	// Gradient-ish accent for the heading keyword
	AccentStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Title style for headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	// Muted/dimmed text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Rating star and value
	RatingStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Card style
	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 2).
			MarginBottom(1)

	// Active/focused card
	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 2).
			MarginBottom(1)

	// Loading skeleton block
	SkeletonStyle = lipgloss.NewStyle().
			Foreground(Skeleton).
			Border(RoundedBorder).
			BorderForeground(Skeleton).
			Padding(0, 2).
			MarginBottom(1)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	// Input field
	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Focused input
	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)
