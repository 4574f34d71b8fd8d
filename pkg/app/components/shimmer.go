package components

import (
	"strings"

	"github.com/kerbaras/movies/pkg/app/styles"
)

const shimmerCards = 3

// Shimmer is the static loading placeholder.
type Shimmer struct{}

func (Shimmer) View() string {
	block := styles.SkeletonStyle.Width(40).Render(
		strings.Repeat("▒", 24) + "\n" + strings.Repeat("░", 16) + "\n" + strings.Repeat("░", 30),
	)

	var b strings.Builder
	for i := 0; i < shimmerCards; i++ {
		b.WriteString(block)
		b.WriteString("\n")
	}
	return b.String()
}
