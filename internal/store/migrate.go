package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entann "entgo.io/ent/dialect/entsql"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/mindspark/ent/schema"
)

// entities are the ent schemas persisted by the store.
var entities = []ent.Interface{
	entschema.KVRecord{},
	entschema.LLMRequestEvent{},
}

// migrate creates or extends the tables for entities. Migration is
// append-only: existing columns and rows are kept.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables := make([]*sqlschema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableOf(e)
		if err != nil {
			return err
		}
		tables = append(tables, t)
	}
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// tableOf describes the table for one ent schema: an auto-increment id,
// the mixin and schema fields in order, and their indexes.
func tableOf(e ent.Interface) (*sqlschema.Table, error) {
	name := tableName(e)
	id := &sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &sqlschema.Table{
		Name:       name,
		Columns:    []*sqlschema.Column{id},
		PrimaryKey: []*sqlschema.Column{id},
	}

	fields := e.Fields()
	indexes := e.Indexes()
	for _, mx := range e.Mixin() {
		fields = append(mx.Fields(), fields...)
		indexes = append(mx.Indexes(), indexes...)
	}

	byName := map[string]*sqlschema.Column{}
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		if d.StorageKey != "" {
			col.Name = d.StorageKey
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		t.Columns = append(t.Columns, col)
		byName[d.Name] = col
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		idx := &sqlschema.Index{
			Name:   name + "_" + strings.Join(d.Fields, "_"),
			Unique: d.Unique,
		}
		for _, fname := range d.Fields {
			col, ok := byName[fname]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown field %q", name, fname)
			}
			idx.Columns = append(idx.Columns, col)
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t, nil
}

// tableName is the entsql table annotation, or the lowercased type name
// with an "s" like ent's generator would produce.
func tableName(e ent.Interface) string {
	for _, a := range e.Annotations() {
		switch a := a.(type) {
		case entann.Annotation:
			if a.Table != "" {
				return a.Table
			}
		case *entann.Annotation:
			if a != nil && a.Table != "" {
				return a.Table
			}
		}
	}
	return strings.ToLower(reflect.TypeOf(e).Name()) + "s"
}
