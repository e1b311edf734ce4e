package state_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bft-labs/opstate/pkg/state"
)

func Example() {
	root, err := os.MkdirTemp("", "opstate-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(root)

	ctx := context.Background()
	repo := state.NewFileRepository(root)

	if _, err := repo.Load(ctx); errors.Is(err, state.ErrNotFound) {
		fmt.Println("first run")
	}

	if err := repo.Store(ctx, state.NewState("1234", state.Software(state.SoftwareList))); err != nil {
		fmt.Println(err)
		return
	}
	if err := repo.Update(ctx, state.Restart(state.RestartPending)); err != nil {
		fmt.Println(err)
		return
	}

	st, err := repo.Load(ctx)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(st)

	st, err = repo.Clear(ctx)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(st)

	// Output:
	// first run
	// operation_id=1234 operation=Restart(Pending)
	// operation_id=none operation=none
}

func ExampleParseStatus() {
	fmt.Println(state.ParseStatus("update"))
	fmt.Println(state.ParseStatus("Restarting"))
	fmt.Println(state.ParseStatus("reboot"))

	// Output:
	// Software(update)
	// Restart(Restarting)
	// UnknownOperation
}
