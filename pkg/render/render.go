package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"clustat/pkg/types"
)

// Text writes the human-readable report. The whole report is rendered into an
// intermediate buffer and flushed to w only after rendering completes, so a
// mid-render failure never leaves a half-printed report visible.
func Text(w io.Writer, view *types.ClusterView) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Profile: %s\n", view.Profile)
	fmt.Fprintln(&buf, "Pools:")
	for _, pool := range view.Pools {
		fmt.Fprintf(&buf, "    %s\n", pool)
	}
	fmt.Fprintln(&buf, "Services:")
	for _, host := range view.Hosts {
		if host.Name == view.Leader {
			fmt.Fprintf(&buf, "%s  (leader)\n", host.Name)
		} else {
			fmt.Fprintf(&buf, "%s\n", host.Name)
		}
		for _, proc := range host.Processes {
			fmt.Fprintln(&buf, ProcessLine(proc))
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// ProcessLine renders one process in the fixed-width column layout
// [<status>] <role> <fid> <endpoint>.
func ProcessLine(p types.Process) string {
	return fmt.Sprintf("[%-10s] %-10s  %s  %s", p.Status, p.Role, p.Fid.String(), p.Endpoint)
}

type svcDoc struct {
	Name   string `json:"name"`
	Fid    string `json:"fid"`
	Ep     string `json:"ep"`
	Status string `json:"status"`
}

type nodeDoc struct {
	Name string   `json:"name"`
	Svcs []svcDoc `json:"svcs"`
}

type reportDoc struct {
	Profile    string          `json:"profile"`
	Pools      []string        `json:"pools"`
	Filesystem json.RawMessage `json:"filesystem"`
	Nodes      []nodeDoc       `json:"nodes"`
}

// JSON writes the structured report. Fids serialize as their canonical string
// form, never as nested objects; filesystem stats pass through unmodified.
// Output is written in one shot so a failed marshal emits nothing.
func JSON(w io.Writer, view *types.ClusterView) error {
	doc := reportDoc{
		Profile:    view.Profile,
		Pools:      view.Pools,
		Filesystem: view.Filesystem,
		Nodes:      []nodeDoc{},
	}
	for _, host := range view.Hosts {
		node := nodeDoc{Name: host.Name, Svcs: []svcDoc{}}
		for _, proc := range host.Processes {
			node.Svcs = append(node.Svcs, svcDoc{
				Name:   string(proc.Role),
				Fid:    proc.Fid.String(),
				Ep:     proc.Endpoint,
				Status: string(proc.Status),
			})
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
