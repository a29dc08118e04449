package operation

import (
	"github.com/spf13/pflag"

	"github.com/kbukum/recskit/record"
)

// union joins two records into one object. Fields of each side are copied
// under that side's prefix; on a name clash the right side wins. A side
// that is not an object is stored whole under its prefix, or dropped when
// the prefix is empty.
type union struct {
	LeftPrefix  string
	RightPrefix string
}

func (u *union) flags(fs *pflag.FlagSet) {
	fs.StringVar(&u.LeftPrefix, "lp", "", "prefix for fields of the left (input) record")
	fs.StringVar(&u.RightPrefix, "rp", "", "prefix for fields of the right (file) record")
}

func (u union) merge(left, right record.Record) record.Record {
	fields := map[string]record.Record{}
	add := func(prefix string, r record.Record) {
		if !r.IsObject() {
			if prefix != "" {
				fields[prefix] = r.Clone()
			}
			return
		}
		for _, k := range r.Keys() {
			fields[prefix+k] = r.Field(k).Clone()
		}
	}
	add(u.LeftPrefix, left)
	add(u.RightPrefix, right)
	return record.FromMap(fields)
}
