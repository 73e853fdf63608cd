// Package script runs tengo scripts against an editor. Scripts see a single
// `editor` map:
//
//	ns := editor.add_namespace()        // id of the new namespace
//	editor.move(ns, 300, 200)           // local position of a shape
//	editor.add_definition()             // enter placement mode
//	ok := editor.place(300, 200)        // place at a content point
//	editor.wheel(50, 50, 1)             // zoom at a canvas point
//	n := editor.count()
package script

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/macho/editor"
)

// RunFile runs the script at path.
func RunFile(ctx context.Context, ed *editor.Editor, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("script: read %s: %w", path, err)
	}
	if err := Run(ctx, ed, src); err != nil {
		return fmt.Errorf("script: %s: %w", path, err)
	}
	return nil
}

// Run compiles and runs src with the editor bindings.
func Run(ctx context.Context, ed *editor.Editor, src []byte) error {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := s.Add("editor", bindings(ed)); err != nil {
		return err
	}
	_, err := s.RunContext(ctx)
	return err
}

func bindings(ed *editor.Editor) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["add_namespace"] = &tengo.UserFunction{Name: "add_namespace", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ns := ed.AddNamespace()
		return &tengo.String{Value: ns.ID.String()}, nil
	}}

	values["add_definition"] = &tengo.UserFunction{Name: "add_definition", Value: func(args ...tengo.Object) (tengo.Object, error) {
		def := ed.AddDefinition()
		return &tengo.String{Value: def.ID.String()}, nil
	}}

	values["place"] = &tengo.UserFunction{Name: "place", Value: func(args ...tengo.Object) (tengo.Object, error) {
		xy, err := floats("place", 2, args)
		if err != nil {
			return nil, err
		}
		// placement ends either way, as with a canvas click
		err = ed.PlaceDefinition(xy[0], xy[1])
		ed.CancelPlacement()
		var noTarget *editor.NoTargetError
		switch {
		case err == nil:
			return tengo.TrueValue, nil
		case errors.As(err, &noTarget), errors.Is(err, editor.ErrNotPlacing):
			return tengo.FalseValue, nil
		default:
			return nil, err
		}
	}}

	values["click"] = &tengo.UserFunction{Name: "click", Value: func(args ...tengo.Object) (tengo.Object, error) {
		xy, err := floats("click", 2, args)
		if err != nil {
			return nil, err
		}
		ed.Click(xy[0], xy[1])
		ed.Release(xy[0], xy[1])
		return tengo.UndefinedValue, nil
	}}

	values["wheel"] = &tengo.UserFunction{Name: "wheel", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := floats("wheel", 3, args)
		if err != nil {
			return nil, err
		}
		ed.Wheel(v[0], v[1], v[2])
		return tengo.UndefinedValue, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		id, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "id", Expected: "string", Found: args[0].TypeName()}
		}
		xy, err := floats("move", 2, args[1:])
		if err != nil {
			return nil, err
		}
		s, found := ed.Stage().Find(id)
		if !found {
			return tengo.FalseValue, nil
		}
		s.SetPosition(xy[0], xy[1])
		return tengo.TrueValue, nil
	}}

	values["count"] = &tengo.UserFunction{Name: "count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ed.Stage().Len())}, nil
	}}

	values["mode"] = &tengo.UserFunction{Name: "mode", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: ed.Mode().String()}, nil
	}}

	values["scale"] = &tengo.UserFunction{Name: "scale", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ed.View().Scale()}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func floats(name string, n int, args []tengo.Object) ([]float64, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, n)
	for i, a := range args {
		v, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s arg %d", name, i),
				Expected: "number",
				Found:    a.TypeName(),
			}
		}
		out[i] = v
	}
	return out, nil
}
