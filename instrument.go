package bankreport

import "strings"

// Instrument is a listed equity tracked by the report.
type Instrument struct {
	ID   string // provider code, e.g. 601398.SH
	Name string
}

// Registry is an ordered set of instruments. Its order is the display order
// used whenever a stage does not sort its output.
type Registry []Instrument

// BankStocks returns the basket of large state-owned banks listed in Shanghai.
func BankStocks() Registry {
	return Registry{
		{ID: "601398.SH", Name: "工商银行"},
		{ID: "601939.SH", Name: "建设银行"},
		{ID: "601288.SH", Name: "农业银行"},
		{ID: "601988.SH", Name: "中国银行"},
		{ID: "601328.SH", Name: "交通银行"},
		{ID: "601658.SH", Name: "邮储银行"},
	}
}

// IDs returns the instrument codes in registry order.
func (r Registry) IDs() []string {
	ids := make([]string, len(r))
	for i, inst := range r {
		ids[i] = inst.ID
	}
	return ids
}

// Joined returns the codes joined by commas, the way batched provider calls expect them.
func (r Registry) Joined() string { return strings.Join(r.IDs(), ",") }

// Name returns the display name for id, or id itself if it is unknown.
func (r Registry) Name(id string) string {
	if i := r.index(id); i >= 0 {
		return r[i].Name
	}
	return id
}

// Contains reports whether id belongs to the registry.
func (r Registry) Contains(id string) bool { return r.index(id) >= 0 }

func (r Registry) index(id string) int {
	for i, inst := range r {
		if inst.ID == id {
			return i
		}
	}
	return -1
}
