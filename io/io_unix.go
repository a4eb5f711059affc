//go:build !windows

package optio

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

type unixPlatform struct {
	colorCapOnce sync.Once
	colorCap     int // -1=unknown, otherwise number of colors
}

func newPlatformIO() platformIO { return &unixPlatform{} }

func (u *unixPlatform) isTerminal(f *os.File) bool           { return fileIsTerminal(f) }
func (u *unixPlatform) termSize(f *os.File) (int, int, bool) { return fileTermSize(f) }
func (u *unixPlatform) enableVirtualTerminal() bool          { return true }
func (u *unixPlatform) vtEnabled() bool                      { return true }

// detectColorCapability asks terminfo via tput, once per process
func (u *unixPlatform) detectColorCapability() int {
	u.colorCapOnce.Do(func() {
		u.colorCap = -1

		if err := exec.Command("tput", "RGB").Run(); err == nil {
			u.colorCap = 1 << 24
			return
		}

		cmd := exec.Command("tput", "colors")
		cmd.Env = os.Environ()
		if out, err := cmd.Output(); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(string(out))); err == nil {
				u.colorCap = n
				return
			}
		}

		term := os.Getenv("TERM")
		if strings.Contains(term, "256") {
			u.colorCap = 256
		} else if term != "" && term != "dumb" {
			u.colorCap = 8
		}
	})
	return u.colorCap
}

func (u *unixPlatform) colorCapabilityLevel() int {
	switch c := u.detectColorCapability(); {
	case c >= 1<<24:
		return 3
	case c >= 256:
		return 2
	case c >= 8:
		return 1
	default:
		return 0
	}
}
