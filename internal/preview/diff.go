package preview

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// LineType represents the kind of line in a diff.
type LineType int

const (
	LineContext  LineType = iota // Line exists in both files
	LineAdded                    // Line added in the new file
	LineRemoved                  // Line removed from the old file
	LineModified                 // Added line replacing a removed one
)

// DiffLine represents a single line in a diff
type DiffLine struct {
	OldLineNo int // 0 for added lines
	NewLineNo int // 0 for removed lines
	Kind      LineType
	Content   string
}

// Hunk represents a section of changes in a diff
type Hunk struct {
	Header string
	Lines  []DiffLine
}

// DiffResult contains the parsed result of a diff
type DiffResult struct {
	OldFile string
	NewFile string
	Hunks   []Hunk
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+),?(\d*) \+(\d+),?(\d*) @@`)

// Diff computes the unified diff between two texts and parses it.
func Diff(filename, oldText, newText string) (DiffResult, error) {
	return ParseUnifiedDiff(udiff.Unified("a/"+filename, "b/"+filename, oldText, newText))
}

// ParseUnifiedDiff parses a unified diff format string into structured data.
// Added lines that directly replace removed lines are marked as modified.
func ParseUnifiedDiff(diff string) (DiffResult, error) {
	var result DiffResult
	var currentHunk *Hunk

	var oldLine, newLine int
	inFileHeader := true

	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		if inFileHeader {
			if name, ok := strings.CutPrefix(line, "--- "); ok {
				result.OldFile = strings.TrimPrefix(name, "a/")
				continue
			}
			if name, ok := strings.CutPrefix(line, "+++ "); ok {
				result.NewFile = strings.TrimPrefix(name, "b/")
				inFileHeader = false
				continue
			}
		}

		if matches := hunkHeaderRe.FindStringSubmatch(line); matches != nil {
			if currentHunk != nil {
				result.Hunks = append(result.Hunks, finishHunk(*currentHunk))
			}
			currentHunk = &Hunk{Header: line}

			oldLine, _ = strconv.Atoi(matches[1])
			newLine, _ = strconv.Atoi(matches[3])
			continue
		}

		if strings.HasPrefix(line, `\ No newline at end of file`) || currentHunk == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+"):
			currentHunk.Lines = append(currentHunk.Lines, DiffLine{
				NewLineNo: newLine,
				Kind:      LineAdded,
				Content:   line[1:],
			})
			newLine++
		case strings.HasPrefix(line, "-"):
			currentHunk.Lines = append(currentHunk.Lines, DiffLine{
				OldLineNo: oldLine,
				Kind:      LineRemoved,
				Content:   line[1:],
			})
			oldLine++
		default:
			currentHunk.Lines = append(currentHunk.Lines, DiffLine{
				OldLineNo: oldLine,
				NewLineNo: newLine,
				Kind:      LineContext,
				Content:   strings.TrimPrefix(line, " "),
			})
			oldLine++
			newLine++
		}
	}

	if currentHunk != nil {
		result.Hunks = append(result.Hunks, finishHunk(*currentHunk))
	}
	return result, nil
}

// finishHunk pairs each run of removed lines with the run of added lines
// that follows it; paired added lines become modifications.
func finishHunk(h Hunk) Hunk {
	for i := 0; i < len(h.Lines); {
		if h.Lines[i].Kind != LineRemoved {
			i++
			continue
		}
		removed := 0
		for i+removed < len(h.Lines) && h.Lines[i+removed].Kind == LineRemoved {
			removed++
		}
		j := i + removed
		for k := 0; k < removed && j+k < len(h.Lines) && h.Lines[j+k].Kind == LineAdded; k++ {
			h.Lines[j+k].Kind = LineModified
		}
		i = j
	}
	return h
}
