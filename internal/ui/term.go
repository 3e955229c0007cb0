package ui

import (
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether the given file descriptor refers to a terminal.
//
//nolint:gosec // G115: fd values are small non-negative integers
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// TermWidth returns the terminal width in columns, or 80 if it cannot be determined.
//
//nolint:gosec // G115: fd values are small non-negative integers
func TermWidth(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// Terminal describes f for renderer selection.
func Terminal(f *os.File) (isTTY bool, width int) {
	if f == nil {
		return false, 80
	}
	return IsTTY(f.Fd()), TermWidth(f.Fd())
}
