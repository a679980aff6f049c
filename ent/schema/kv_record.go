package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// KVRecord is one entry of the key/value bucket that holds accounts,
// saved results and the session as JSON documents.
type KVRecord struct {
	ent.Schema
}

func (KVRecord) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "kv"}}
}

func (KVRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			NotEmpty(),
		field.Bytes("value"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
