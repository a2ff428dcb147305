package aurora

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ItemKind is the list an item belongs to.
type ItemKind int

const (
	Todo ItemKind = iota
	Packing
	Buying
)

var ItemKinds = []ItemKind{Todo, Packing, Buying}

func (k ItemKind) String() string {
	switch k {
	case Todo:
		return "TODO"
	case Packing:
		return "PACKING"
	case Buying:
		return "SHOPPING"
	default:
		return "UNKNOWN"
	}
}

func (k ItemKind) Label() string {
	switch k {
	case Todo:
		return "待辦"
	case Packing:
		return "行李"
	case Buying:
		return "購物"
	default:
		return "?"
	}
}

// ParseItemKind parses a kind name, in any case, or its Chinese label.
func ParseItemKind(s string) (ItemKind, error) {
	s = strings.TrimSpace(s)
	for _, k := range ItemKinds {
		if strings.EqualFold(s, k.String()) || s == k.Label() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown list %q, want one of todo, packing, shopping", s)
}

func (k ItemKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *ItemKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	p, err := ParseItemKind(s)
	if err != nil {
		return err
	}
	*k = p
	return nil
}

// Everyone is the assignee of shared items.
const Everyone = "所有人"

// Item is a line of the preparation checklist.
type Item struct {
	ID        string   `json:"id"`
	Task      string   `json:"task"`
	Completed bool     `json:"completed"`
	Assignee  string   `json:"assignee"`
	Kind      ItemKind `json:"category"`
}

// Checklist holds the to-do, packing and shopping lists.
type Checklist struct {
	mu      sync.Mutex
	items   []Item
	storage Storage
	log     *zap.Logger
	newID   func() string
}

// OpenChecklist loads the checklist from st or starts from the sample one.
func OpenChecklist(st Storage, log *zap.Logger) *Checklist {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checklist{
		items:   loadOrDefault(st, KeyChecklist, DecodeChecklist, DefaultChecklist, log),
		storage: st,
		log:     log,
		newID:   shortID,
	}
}

func DefaultChecklist() []Item {
	return []Item{
		{ID: "1", Task: "辦理 eTA 加拿大簽證", Completed: true, Assignee: Everyone, Kind: Todo},
		{ID: "2", Task: "購買防寒羽絨衣 (-20度等級)", Assignee: "Kevin", Kind: Packing},
		{ID: "3", Task: "租借腳架", Assignee: "Emily", Kind: Packing},
		{ID: "4", Task: "楓糖餅乾 (10盒)", Assignee: Everyone, Kind: Buying},
	}
}

func EncodeChecklist(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func DecodeChecklist(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("cannot decode checklist: %w", err)
	}
	return items, nil
}

// Items returns the items of kind k, in insertion order.
func (c *Checklist) Items(k ItemKind) []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	var items []Item
	for _, it := range c.items {
		if it.Kind == k {
			items = append(items, it)
		}
	}
	return items
}

// Progress returns the number of completed items of kind k and the total.
func (c *Checklist) Progress(k ItemKind) (done, total int) {
	for _, it := range c.Items(k) {
		total++
		if it.Completed {
			done++
		}
	}
	return done, total
}

func (c *Checklist) index(id string) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == id })
}

// Add appends a task to list k. An empty task is a no-op, an empty assignee means Everyone.
func (c *Checklist) Add(k ItemKind, task, assignee string) (Item, bool, error) {
	task = strings.TrimSpace(task)
	if task == "" {
		return Item{}, false, nil
	}
	if assignee = strings.TrimSpace(assignee); assignee == "" {
		assignee = Everyone
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.newID()
	for id == "" || c.index(id) >= 0 {
		id = c.newID()
	}
	it := Item{ID: id, Task: task, Assignee: assignee, Kind: k}
	c.items = append(slices.Clone(c.items), it)
	return it, true, c.save()
}

// Toggle flips the completion of item id.
func (c *Checklist) Toggle(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	c.items = slices.Clone(c.items)
	c.items[i].Completed = !c.items[i].Completed
	return true, c.save()
}

// Remove deletes item id once cf confirmed it.
func (c *Checklist) Remove(id string, cf Confirmer) (bool, error) {
	c.mu.Lock()
	found := c.index(id) >= 0
	c.mu.Unlock()
	if !found || !cf.Confirm("確定要刪除此項目嗎？") {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	c.items = slices.Delete(slices.Clone(c.items), i, i+1)
	return true, c.save()
}

func (c *Checklist) save() error {
	if err := save(c.storage, KeyChecklist, EncodeChecklist, c.items); err != nil {
		c.log.Error("cannot save checklist", zap.Error(err))
		return err
	}
	return nil
}
