//go:build windows

package optio

import (
	"os"

	"golang.org/x/sys/windows"
)

type windowsPlatform struct{}

func newPlatformIO() platformIO { return &windowsPlatform{} }

func (w *windowsPlatform) isTerminal(f *os.File) bool           { return fileIsTerminal(f) }
func (w *windowsPlatform) termSize(f *os.File) (int, int, bool) { return fileTermSize(f) }

func stdoutMode() (windows.Handle, uint32, bool) {
	h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	if err != nil || h == windows.InvalidHandle || h == 0 {
		return 0, 0, false
	}
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return 0, 0, false
	}
	return h, mode, true
}

func (w *windowsPlatform) enableVirtualTerminal() bool {
	h, mode, ok := stdoutMode()
	if !ok {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}

func (w *windowsPlatform) vtEnabled() bool {
	_, mode, ok := stdoutMode()
	return ok && mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}

// colorCapabilityLevel trusts known truecolor consoles and VT mode
func (w *windowsPlatform) colorCapabilityLevel() int {
	if os.Getenv("WT_SESSION") != "" || os.Getenv("WT_PROFILE_ID") != "" {
		return 3
	}
	if os.Getenv("ConEmuANSI") == "ON" {
		return 3
	}
	if w.vtEnabled() {
		return 3
	}
	if w.isTerminal(os.Stdout) {
		return 2
	}
	return 0
}
