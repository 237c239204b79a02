package agent

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		exe     string
		cmdline string
		pattern string
		want    bool
	}{
		{"exe path match", "/usr/bin/consul", "", "/bin/consul", true},
		{"cmdline match", "", "/usr/bin/consul agent -config-dir /etc/consul.d", "/bin/consul", true},
		// An unprivileged caller cannot read another user's exe link, so the
		// agent's entry arrives with an empty exe; the cmdline alone must
		// still identify it.
		{"unreadable exe falls back to cmdline", "", "/usr/bin/consul agent -server", "/bin/consul", true},
		{"unreadable exe and foreign cmdline", "", "/usr/sbin/sshd -D", "/bin/consul", false},
		{"no match", "/usr/bin/containerd", "containerd", "/bin/consul", false},
		{"similar binary name", "/usr/bin/consul-template", "", "/bin/consul", true},
		{"empty entry", "", "", "/bin/consul", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.exe, tt.cmdline, tt.pattern)
			if got != tt.want {
				t.Errorf("Matches(%q, %q, %q) = %v, want %v", tt.exe, tt.cmdline, tt.pattern, got, tt.want)
			}
		})
	}
}
