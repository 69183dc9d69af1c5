package testutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// FakeRenderer is a session renderer that writes its sorted params into the
// destination file. Rendered records the (src, dst) pairs.
type FakeRenderer struct {
	FS       afero.Fs
	Values   map[string]interface{}
	Err      error
	Rendered [][2]string
}

// Params returns the renderer parameters
func (r *FakeRenderer) Params() map[string]interface{} {
	return r.Values
}

// Render writes the params into dst
func (r *FakeRenderer) Render(src, dst string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Rendered = append(r.Rendered, [2]string{src, dst})
	if r.FS == nil {
		return nil
	}

	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%v\n", k, r.Values[k])
	}
	return afero.WriteFile(r.FS, dst, []byte(b.String()), 0644)
}
