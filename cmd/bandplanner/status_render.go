package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeOK
	noticeWarn
	noticeError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func renderNotice(kind noticeKind, message string, colorize bool) string {
	base := fmt.Sprintf("[%s] %s", noticeKindLabel(kind), strings.TrimSpace(message))
	if colorize {
		if color := noticeKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func noticeKindLabel(kind noticeKind) string {
	switch kind {
	case noticeOK:
		return "OK"
	case noticeWarn:
		return "WARN"
	case noticeError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func noticeKindColor(kind noticeKind) string {
	switch kind {
	case noticeOK:
		return ansiGreen
	case noticeWarn:
		return ansiYellow
	case noticeError:
		return ansiRed
	case noticeInfo:
		return ansiBlue
	default:
		return ""
	}
}

// missingColor shades a group header by how far it is from playable.
func missingColor(missing int) string {
	switch {
	case missing == 0:
		return ansiGreen
	case missing == 1:
		return ansiYellow
	default:
		return ansiRed
	}
}

func renderGroupHeader(label string, missing, songs int, colorize bool) []string {
	line := fmt.Sprintf("== %s (%d) ==", strings.TrimSpace(label), songs)
	rule := strings.Repeat("-", len(line))
	if colorize {
		color := missingColor(missing)
		line = color + line + ansiReset
		rule = color + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	return isTerminal(writer)
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
