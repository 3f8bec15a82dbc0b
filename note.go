package zenshare

import (
	"strings"
	"time"

	"github.com/zenmark/zenshare/internal/envelope"
)

// Format is the content format of a note.
type Format string

const (
	// FormatMarkdown marks markdown content.
	FormatMarkdown Format = envelope.FormatterMarkdown
	// FormatPlainText marks plain text content.
	FormatPlainText Format = envelope.FormatterPlainText
)

// DefaultTitle is used for shared notes whose content has no title heading.
const DefaultTitle = "Shared Note"

const titlePrefix = "# "

// Note is a note to be shared.
type Note struct {
	Title   string
	Content string
	Format  Format // empty means FormatMarkdown
}

// SharedNote is a note recovered from a share link.
type SharedNote struct {
	Title   string
	Content string
	Format  Format

	// TimeToLive is the remaining lifetime reported by the store. Zero
	// means the store reported none, e.g. for pastes that never expire.
	TimeToLive time.Duration
	// ExpiresAt is the fetch time plus TimeToLive, or zero.
	ExpiresAt time.Time
}

// composeContent prepends the title as a markdown heading so it survives
// the round trip through the store.
func composeContent(title, content string) string {
	if title == "" {
		return content
	}
	return titlePrefix + title + "\n\n" + content
}

// splitTitle reverses composeContent. The first line becomes the title if it
// is a "# " heading; the separator line after it is dropped only if blank.
func splitTitle(content string) (title, body string) {
	first, rest, hasRest := strings.Cut(content, "\n")
	if !strings.HasPrefix(first, titlePrefix) {
		return DefaultTitle, content
	}

	title = strings.TrimSpace(strings.TrimPrefix(first, titlePrefix))
	if title == "" {
		title = DefaultTitle
	}
	if !hasRest {
		return title, ""
	}

	second, remaining, hasMore := strings.Cut(rest, "\n")
	if strings.TrimSpace(second) != "" {
		return title, rest
	}
	if !hasMore {
		return title, ""
	}
	return title, remaining
}

func normalizeFormat(f Format) Format {
	if f == "" {
		return FormatMarkdown
	}
	return f
}
