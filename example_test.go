package aktor_test

import (
	"context"
	"fmt"

	"github.com/jkivila/aktor"
	"github.com/jkivila/aktor/pkg/actors"
)

func ExampleNew() {
	flow := aktor.New("Greeter").
		Add(actors.NewStringConstants("names", "ada", "grace")).
		Transform("greet", func(ctx context.Context, in any) (any, error) {
			return "hello " + in.(string), nil
		}).
		Sink("print", func(ctx context.Context, in any) error {
			fmt.Println(in)
			return nil
		}).
		Build()

	if err := aktor.Run(context.Background(), flow); err != nil {
		fmt.Println("error:", err)
	}
	// Output:
	// hello ada
	// hello grace
}

func ExampleFlowBuilder_Storage() {
	flow := aktor.New("Totals").
		Storage("total", 0).
		Add(
			actors.NewForLoop("i", 1, 4, 1),
			actors.NewUpdateStorageValue("sum", "total", "x + 1"),
			actors.NewNull("done"),
		).
		Build()

	if err := aktor.Run(context.Background(), flow); err != nil {
		fmt.Println("error:", err)
	}
	fmt.Println("total:", flow.Storage()["total"])
	// Output:
	// total: 4
}

func ExampleLoad() {
	doc := []byte(`{
  "type": "ActorHandler",
  "class": "Flow",
  "name": "FromDocument",
  "config": {},
  "actors": [
    {"type": "Actor", "class": "StringConstants", "name": "src",
     "config": {"strings": ["one", "two"]}},
    {"type": "Actor", "class": "Null", "name": "out", "config": {}}
  ]
}`)

	actor, err := aktor.FromJSON(doc, aktor.NewRegistry())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	flow := actor.(*aktor.Flow)
	fmt.Println(flow.Name(), "with", len(flow.Actors()), "actors")
	// Output:
	// FromDocument with 2 actors
}
