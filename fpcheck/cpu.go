package fpcheck

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HardwareFMA reports whether math.FMA runs on a fused CPU instruction on
// this machine rather than in software.
func HardwareFMA() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasFMA
	case "arm64", "ppc64", "ppc64le", "s390x", "riscv64", "loong64":
		return true
	}
	return false
}
