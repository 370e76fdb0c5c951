package main

import (
	"go.uber.org/fx"
)

func main() {
	fx.New(
		Module,
		fx.Invoke(runServer),
	).Run()
}
