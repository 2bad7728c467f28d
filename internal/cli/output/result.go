package output

import "strings"

// Result is one command line and the reply text it produced.
type Result struct {
	Command string   `json:"command" yaml:"command"`
	Status  string   `json:"status" yaml:"status"`
	Data    []string `json:"data" yaml:"data"`
}

// NewResult splits reply text into the status line and payload lines.
func NewResult(command, text string) Result {
	r := Result{Command: command, Data: []string{}}
	if text == "" {
		return r
	}
	lines := strings.Split(text, "\n")
	r.Status = lines[0]
	r.Data = append(r.Data, lines[1:]...)
	return r
}

// Text rejoins the reply lines.
func (r Result) Text() string {
	if r.Status == "" && len(r.Data) == 0 {
		return ""
	}
	return strings.Join(append([]string{r.Status}, r.Data...), "\n")
}

// Table renders the status next to the first payload line and the
// remaining lines below it.
func (r Result) Table() *Table {
	t := &Table{Headers: []string{"STATUS", "DATA"}}
	if len(r.Data) == 0 {
		t.AddRow(r.Status, "")
		return t
	}
	for i, line := range r.Data {
		status := ""
		if i == 0 {
			status = r.Status
		}
		t.AddRow(status, line)
	}
	return t
}
