package output

import (
	"fmt"
	"io"
)

// RawFormatter prints reply text unchanged, followed by a newline.
type RawFormatter struct{}

// Format writes data as plain text.
func (f *RawFormatter) Format(w io.Writer, data any) error {
	var err error
	switch v := data.(type) {
	case Result:
		_, err = fmt.Fprintln(w, v.Text())
	case *Result:
		_, err = fmt.Fprintln(w, v.Text())
	case string:
		_, err = fmt.Fprintln(w, v)
	case Tabler:
		err = v.Table().RenderWithOptions(w, true)
	case *Table:
		err = v.RenderWithOptions(w, true)
	default:
		_, err = fmt.Fprintln(w, v)
	}
	return err
}
