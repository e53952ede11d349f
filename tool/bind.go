package tool

import (
	"context"
	"encoding/json"

	"github.com/reagentkit/reagent"
)

// Bind creates a Tool and Handler from a typed function.
// The parameter schema is generated from struct tags on type T.
//
// Example:
//
//	type TranslateArgs struct {
//	    Text string `json:"text" desc:"Text to translate" required:"true"`
//	    To   string `json:"to" desc:"Target language" required:"true"`
//	}
//
//	t, h := tool.Bind("translate", "Translate text between languages",
//	    func(ctx context.Context, args TranslateArgs) (string, error) {
//	        return translated, nil
//	    })
func Bind[T any](name, description string, fn TypedHandler[T]) (reagent.Tool, Handler) {
	t := reagent.Tool{
		Name:        name,
		Description: description,
		Parameters:  reagent.SchemaFrom[T]().Build(),
	}

	handler := func(ctx context.Context, args reagent.Args) (string, error) {
		var typed T
		data, err := json.Marshal(map[string]any(args))
		if err != nil {
			return "", err
		}
		if err := json.Unmarshal(data, &typed); err != nil {
			return "", err
		}
		return fn(ctx, typed)
	}

	return t, handler
}

// Func creates a Registration from a typed function, for use with
// Registry.Add or RegisterAll.
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	t, h := Bind(name, description, fn)
	return Registration{Tool: t, Handler: h}
}

// BindTo creates a tool from a typed function and registers it directly.
func BindTo[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	t, h := Bind(name, description, fn)
	return r.Register(t, h)
}

// MustBindTo is like BindTo but panics on error. Useful for initialization
// code where a registration failure should be fatal.
func MustBindTo[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := BindTo(r, name, description, fn); err != nil {
		panic(err)
	}
}
