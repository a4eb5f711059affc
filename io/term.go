package optio

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// shared by both platforms, x/term handles the OS specifics

func fileIsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func fileTermSize(f *os.File) (int, int, bool) {
	if f == nil {
		return 0, 0, false
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func fallbackTermSizeFromEnv() (int, int) {
	return positiveEnv("COLUMNS"), positiveEnv("LINES")
}

func positiveEnv(key string) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
