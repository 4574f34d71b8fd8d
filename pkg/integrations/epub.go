package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/movies/pkg/data"
)

// EPubBuilder writes a movie list as a booklet, one section per movie.
type EPubBuilder struct {
	workDir string
}

func NewEPubBuilder() (*EPubBuilder, error) {
	dir, err := os.MkdirTemp("", "movies-epub-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	return &EPubBuilder{workDir: dir}, nil
}

// Build writes the booklet to outputPath. posters maps movie IDs to JPEG
// bytes; movies without a poster get a text-only section.
func (b *EPubBuilder) Build(title string, movies []data.Movie, posters map[int64][]byte, outputPath string) error {
	if len(movies) == 0 {
		return fmt.Errorf("no movies to export")
	}

	e, err := epub.NewEpub(title)
	if err != nil {
		return fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("The Movie Database")
	e.SetDescription(fmt.Sprintf("%d popular movies", len(movies)))
	e.SetLang("en")

	for i, movie := range movies {
		var imgPath string
		if poster, ok := posters[movie.ID]; ok && len(poster) > 0 {
			imgPath, err = b.addPoster(e, movie.ID, poster)
			if err != nil {
				return err
			}
		}

		sectionTitle := fmt.Sprintf("%d. %s", i+1, movie.Title)
		if _, err := e.AddSection(movieSection(movie, imgPath), sectionTitle, "", ""); err != nil {
			return fmt.Errorf("failed to add section for %q: %w", movie.Title, err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := e.Write(outputPath); err != nil {
		return fmt.Errorf("failed to write EPub: %w", err)
	}
	return nil
}

// Close removes the builder's work directory.
func (b *EPubBuilder) Close() error {
	return os.RemoveAll(b.workDir)
}

func (b *EPubBuilder) addPoster(e *epub.Epub, id int64, poster []byte) (string, error) {
	name := fmt.Sprintf("poster-%d.jpg", id)
	path := filepath.Join(b.workDir, name)
	if err := os.WriteFile(path, poster, 0644); err != nil {
		return "", fmt.Errorf("failed to stage poster: %w", err)
	}
	internal, err := e.AddImage(path, name)
	if err != nil {
		return "", fmt.Errorf("failed to add poster %s: %w", name, err)
	}
	return internal, nil
}

func movieSection(m data.Movie, imgPath string) string {
	year := m.Year()
	if year == "" {
		year = "N/A"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(m.Title))
	if imgPath != "" {
		fmt.Fprintf(&sb, `<div class="poster"><img src="%s" alt="%s"/></div>`+"\n",
			imgPath, html.EscapeString(m.Title))
	}
	fmt.Fprintf(&sb, "<p>%.1f &#8226; %s &#8226; %s</p>\n",
		m.VoteAverage, html.EscapeString(strings.ToUpper(m.OriginalLanguage)), year)
	if m.Overview != "" {
		fmt.Fprintf(&sb, "<p>%s</p>\n", html.EscapeString(m.Overview))
	}
	return sb.String()
}

// SanitizeFilename replaces path separators and characters reserved on
// common filesystems, drops control characters and trims surrounding dots
// and spaces.
func SanitizeFilename(name string) string {
	name = reservedChars.Replace(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	return strings.Trim(name, " .")
}

var reservedChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// EPUBFilename derives the default output file name for a booklet title.
func EPUBFilename(title string) string {
	name := strings.Join(strings.Fields(strings.ToLower(SanitizeFilename(title))), "_")
	if name == "" {
		name = "movies"
	}
	return name + ".epub"
}
