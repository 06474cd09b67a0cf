// api/schemas/dump.go
package schemas

// DumpNode is the JSON rendering of one element in a hierarchy dump, used
// by the uidump tool. Boolean flags are emitted only when true to keep the
// output compact for large trees.
type DumpNode struct {
	Class       string      `json:"class,omitempty"`
	Text        string      `json:"text,omitempty"`
	ContentDesc string      `json:"content_desc,omitempty"`
	ResourceID  string      `json:"resource_id,omitempty"`
	Package     string      `json:"package,omitempty"`
	Bounds      *Rect       `json:"bounds,omitempty"`
	Clickable   bool        `json:"clickable,omitempty"`
	Enabled     bool        `json:"enabled,omitempty"`
	Focused     bool        `json:"focused,omitempty"`
	Scrollable  bool        `json:"scrollable,omitempty"`
	Checked     bool        `json:"checked,omitempty"`
	Selected    bool        `json:"selected,omitempty"`
	Children    []*DumpNode `json:"children,omitempty"`
}
