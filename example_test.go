package statestore_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/plankit/statestore"
	"github.com/plankit/statestore/realvector"
)

func Example() {
	dir, err := os.MkdirTemp("", "statestore")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	space := realvector.New("arm", 6, -1, 1, realvector.WithSeed(7))

	arch := statestore.New(space,
		statestore.WithLogger(statestore.NoopLogger()),
		statestore.WithSamplerSeed(7),
	)
	arch.GenerateSamples(1000)

	path := filepath.Join(dir, "arm.samples")
	if err := arch.StoreFile(path); err != nil {
		log.Fatal(err)
	}

	restored := statestore.New(space, statestore.WithLogger(statestore.NoopLogger()))
	if err := restored.LoadFile(path); err != nil {
		log.Fatal(err)
	}

	alloc := restored.SamplerAllocator()
	sampler, err := alloc(space)
	if err != nil {
		log.Fatal(err)
	}

	s := space.AllocState()
	sampler.SampleUniform(s)

	fmt.Println(restored.Len())
	// Output: 1000
}
