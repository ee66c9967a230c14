package envelope_test

import (
	"fmt"

	"github.com/cwbudde/algo-masskit/ms/envelope"
	"github.com/cwbudde/algo-masskit/ms/formula"
)

func ExampleGenerate() {
	dist, err := envelope.Generate(formula.MustParse("C"), nil, 2)
	if err != nil {
		panic(err)
	}
	for _, p := range dist {
		fmt.Printf("%.4f %.4f\n", p.Mass, p.Probability)
	}

	// Output:
	// 12.0000 0.9893
	// 13.0034 0.0107
}

func ExampleGenerator_Generate() {
	gen := envelope.New(envelope.Config{})
	dist, err := gen.Generate(formula.MustParse("Cl2"), 3)
	if err != nil {
		panic(err)
	}
	base, _ := dist.BasePeak()
	fmt.Printf("peaks=%d base=%.4f total=%.4f\n", len(dist), base.Mass, dist.TotalProbability())

	// Output:
	// peaks=3 base=69.9377 total=1.0000
}

func ExampleAggregatedPattern() {
	pattern, err := envelope.AggregatedPattern(formula.MustParse("C6H12O6"), nil, 3)
	if err != nil {
		panic(err)
	}
	for i, p := range pattern {
		fmt.Printf("A+%d %.4f\n", i, p)
	}

	// Output:
	// A+0 0.9226
	// A+1 0.0633
	// A+2 0.0132
}