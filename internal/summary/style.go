package summary

import "fmt"

// Style selects the shape of a summary.
type Style string

const (
	StyleConcise      Style = "concise"
	StyleDetailed     Style = "detailed"
	StyleBulletPoints Style = "bullet_points"
)

// AllStyles returns all styles in display order.
func AllStyles() []Style {
	return []Style{StyleConcise, StyleDetailed, StyleBulletPoints}
}

// DisplayName returns a human-readable label for the style.
func (s Style) DisplayName() string {
	switch s {
	case StyleConcise:
		return "Concise"
	case StyleDetailed:
		return "Detailed"
	case StyleBulletPoints:
		return "Bullet Points"
	default:
		return string(s)
	}
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	switch s {
	case StyleConcise, StyleDetailed, StyleBulletPoints:
		return true
	}
	return false
}

// ParseStyle accepts a style's wire value or the short aliases used on the
// command line.
func ParseStyle(v string) (Style, error) {
	switch v {
	case "", "concise":
		return StyleConcise, nil
	case "detailed":
		return StyleDetailed, nil
	case "bullet_points", "bullets", "bullet-points":
		return StyleBulletPoints, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStyle, v)
}

func (s Style) instruction() string {
	switch s {
	case StyleDetailed:
		return "Write a detailed summary in several paragraphs covering every main idea and the important supporting details."
	case StyleBulletPoints:
		return "Write the summary as a list of bullet points, one key idea per line, each line starting with \"- \"."
	default:
		return "Write a concise summary of one short paragraph covering only the main ideas."
	}
}
