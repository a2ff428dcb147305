package renderer

import "github.com/etnz/aurora"

// Checklist is the view of the preparation lists.
type Checklist struct {
	Lists []List `json:"lists"`
}

// List is one of the preparation lists.
type List struct {
	Kind  string        `json:"kind"`
	Title string        `json:"title"`
	Done  int           `json:"done"`
	Items []aurora.Item `json:"items"`
}

// NewChecklist creates the view of c.
func NewChecklist(c *aurora.Checklist) *Checklist {
	v := &Checklist{}
	for _, k := range aurora.ItemKinds {
		done, _ := c.Progress(k)
		v.Lists = append(v.Lists, List{
			Kind:  k.String(),
			Title: k.Label() + "清單",
			Done:  done,
			Items: c.Items(k),
		})
	}
	return v
}
