package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ChangedFile is a file touched by a diff together with the lines it added
// or modified, numbered in the new version.
type ChangedFile struct {
	Path  string
	Lines []int
}

// Contains reports whether line was added or modified.
func (c ChangedFile) Contains(line int) bool {
	i := sort.SearchInts(c.Lines, line)
	return i < len(c.Lines) && c.Lines[i] == line
}

// ChangedFiles runs git diff against base in dir and returns the changed
// files with their line numbers. Paths are relative to dir and deleted files
// are left out.
func ChangedFiles(ctx context.Context, dir, base string) ([]ChangedFile, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "-U0", "--no-color", "--relative", base, "--")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("git diff failed: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseDiff(output)
}

// hunk header: @@ -oldStart,oldLen +newStart,newLen @@
var chunkHeader = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,(\d+))? @@`)

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var changes []ChangedFile
	var current *ChangedFile

	flush := func() {
		if current != nil && current.Path != "" {
			sort.Ints(current.Lines)
			changes = append(changes, *current)
		}
		current = nil
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "diff --git"):
			flush()
			current = &ChangedFile{Lines: []int{}}
		case current == nil:
		case strings.HasPrefix(line, "+++ "):
			target := strings.TrimPrefix(line, "+++ ")
			if target == "/dev/null" {
				current.Path = ""
				continue
			}
			current.Path = strings.TrimPrefix(target, "b/")
		case strings.HasPrefix(line, "@@"):
			matches := chunkHeader.FindStringSubmatch(line)
			if matches == nil {
				return nil, fmt.Errorf("malformed hunk header: %q", line)
			}
			start, _ := strconv.Atoi(matches[1])
			count := 1
			if matches[2] != "" {
				count, _ = strconv.Atoi(matches[2])
			}
			// count 0 is a pure deletion: nothing in the new file to report on
			for i := 0; i < count; i++ {
				current.Lines = append(current.Lines, start+i)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read diff: %w", err)
	}
	flush()

	return changes, nil
}
