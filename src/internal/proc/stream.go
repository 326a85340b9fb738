package proc

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// RunStream executes the command and delivers its output line by line
// while it runs. Stdout and stderr are merged so progress text arrives
// in emission order, and delivery happens on the calling goroutine, so
// onLine observes lines strictly in that order. The trailing output is
// also returned for diagnostics.
//
// Installer progress is often drawn with carriage returns instead of
// newlines, so "\r", "\n", and "\r\n" all terminate a line.
func RunStream(ctx context.Context, cmd Command, onLine func(string)) (Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, cmd.timeout())
	defer cancel()

	c := exec.CommandContext(runCtx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = environ(cmd.Env)
	c.WaitDelay = waitDelay
	setSpawnAttrs(c, cmd.ShowWindow)

	pr, pw, err := os.Pipe()
	if err != nil {
		return Result{}, fmt.Errorf("failed to create output pipe: %w", err)
	}
	c.Stdout = pw
	c.Stderr = pw

	if err := c.Start(); err != nil {
		_ = pw.Close()
		_ = pr.Close()
		return Result{}, mapRunError(err, runCtx, cmd, "", "")
	}
	// The child holds its own copies of the write end; drop ours so the
	// read side sees EOF when the child exits.
	_ = pw.Close()

	var tail strings.Builder
	scanner := bufio.NewScanner(pr)
	scanner.Split(scanProgressLines)
	for scanner.Scan() {
		line := scanner.Text()
		if onLine != nil {
			onLine(line)
		}
		appendTail(&tail, line)
	}
	_ = pr.Close()

	err = c.Wait()
	res := Result{Stdout: tail.String()}
	if err == nil {
		return res, nil
	}
	return res, mapRunError(err, runCtx, cmd, "", res.Stdout)
}

// appendTail keeps roughly the last excerpt's worth of lines.
func appendTail(tail *strings.Builder, line string) {
	if tail.Len() > stderrExcerptLimit {
		kept := excerpt(tail.String())
		tail.Reset()
		tail.WriteString(kept)
	}
	if tail.Len() > 0 {
		tail.WriteByte('\n')
	}
	tail.WriteString(line)
}

// scanProgressLines is a bufio.SplitFunc terminating lines on "\r",
// "\n", or "\r\n".
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// "\r" at the buffer edge may be half of "\r\n"; wait for more.
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
