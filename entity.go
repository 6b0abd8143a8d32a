package paxada

import (
	"strings"

	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
	"github.com/Rifhice/paxada/mongoose"
	"github.com/Rifhice/paxada/naming"
	"github.com/Rifhice/paxada/refs"
	"github.com/Rifhice/paxada/tstype"
)

// EntityData is the record handed to the entity templates.
type EntityData struct {
	Name                string
	InterfaceData       string
	RefsCount           int
	RefNames            []string
	DefaultGeneric      string
	GenericsWithDefault string
	MongooseData        string
}

// Generics renders the bare generic parameter list, e.g. "<A,B>", or "".
func (d *EntityData) Generics() string {
	if len(d.RefNames) == 0 {
		return ""
	}
	return "<" + strings.Join(d.RefNames, ",") + ">"
}

// ExtractEntity renders the interface body and the Mongoose literal of an
// entity. Composite entity schemas are not rendered: both outputs stay empty
// and each renderer reports it.
func ExtractEntity(e ir.Entity, opts ...Option) (*EntityData, diag.List, error) {
	name := naming.Pascal(e.Name)
	if name == "" {
		return nil, nil, missingInput("entity name is required: %q has no letters or digits", e.Name)
	}
	if e.Schema == nil {
		return nil, nil, (&Error{Code: ErrCodeInvalidInput, Message: "entity has no schema"}).WithDetail("entity", e.Name)
	}
	o := newOptions(opts)
	d := &diag.Collector{}
	data := &EntityData{
		Name:           name,
		DefaultGeneric: o.defaultGeneric,
	}

	if c, ok := e.Schema.(*ir.Composite); ok {
		d.Warnf(diag.CodeUnsupportedComposite, "", "%s entity schemas have no interface rendering", c.Mode)
	} else {
		data.RefNames = refs.Names(e.Schema)
		data.RefsCount = len(data.RefNames)
		data.GenericsWithDefault = refs.GenericWithDefault(e.Schema, o.defaultGeneric)
		iface, ds := tstype.Interface(e.Schema, data.RefNames)
		data.InterfaceData = iface
		d.Merge(ds)
	}

	mongo, ds := mongoose.Schema(e.Schema)
	data.MongooseData = mongo
	d.Merge(ds)
	return data, d.List(), nil
}
