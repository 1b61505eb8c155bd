package game

import (
	"fmt"
	"math/rand/v2"
)

// RandomizerKind selects the shape generation policy
type RandomizerKind uint8

const (
	// RandomizerBag deals each of the seven shapes once per shuffled bag
	RandomizerBag RandomizerKind = iota
	// RandomizerUniform draws every shape independently with equal probability
	RandomizerUniform
)

func (k RandomizerKind) String() string {
	switch k {
	case RandomizerBag:
		return "bag"
	case RandomizerUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// ParseRandomizer resolves a config name to a RandomizerKind
func ParseRandomizer(name string) (RandomizerKind, error) {
	switch name {
	case "", "bag", "7bag":
		return RandomizerBag, nil
	case "uniform", "random":
		return RandomizerUniform, nil
	}
	return RandomizerBag, fmt.Errorf("unknown randomizer %q", name)
}

// Randomizer is a source of upcoming shapes
type Randomizer interface {
	Next() Shape
}

// NewRandomizer builds the randomizer for kind drawing from rng
func NewRandomizer(kind RandomizerKind, rng *rand.Rand) Randomizer {
	if kind == RandomizerUniform {
		return &uniformRandomizer{rng: rng}
	}
	return &bagRandomizer{rng: rng}
}

type bagRandomizer struct {
	rng *rand.Rand
	bag []Shape
}

func (b *bagRandomizer) Next() Shape {
	if len(b.bag) == 0 {
		b.bag = append(b.bag[:0], Shapes[:]...)
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	s := b.bag[len(b.bag)-1]
	b.bag = b.bag[:len(b.bag)-1]
	return s
}

type uniformRandomizer struct {
	rng *rand.Rand
}

func (u *uniformRandomizer) Next() Shape {
	return Shapes[u.rng.IntN(ShapeCount)]
}

// NewRand returns a deterministic generator for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
