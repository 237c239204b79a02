package agent

import (
	"strings"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// Running reports whether the local store-bridging agent process is alive.
// It is the gate before any store interaction: without the agent, store
// queries would fail or hang instead of answering.
func Running(pattern string, logger *zap.Logger) (bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return false, err
	}
	for _, p := range procs {
		exe, err := p.Exe()
		if err != nil {
			// Other users' processes hide their exe link. The cmdline is
			// still world-readable and identifies the agent, which runs
			// under its own user on a standard install.
			exe = ""
		}
		cmdline, _ := p.Cmdline()
		if Matches(exe, cmdline, pattern) {
			logger.Debug("agent process found",
				zap.Int32("pid", p.Pid),
				zap.String("exe", exe),
				zap.String("cmdline", cmdline))
			return true, nil
		}
	}
	return false, nil
}

// Matches checks one process-table entry against the agent pattern.
func Matches(exe, cmdline, pattern string) bool {
	return strings.Contains(exe, pattern) || strings.Contains(cmdline, pattern)
}
