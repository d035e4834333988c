package dst_test

import (
	"fmt"

	"github.com/Harshitk-cp/dempster/dst"
)

func Example() {
	u := dst.NewUniverse[string]()
	if err := u.Register([]string{"burglar", "cat", "wind"}); err != nil {
		panic(err)
	}

	alarm := u.NewEvidence()
	_ = alarm.AddFocalSet(0.6, []string{"burglar"})
	alarm.AddOmegaSet()

	neighbour := u.NewEvidence()
	_ = neighbour.AddFocalSet(0.8, []string{"cat"})
	neighbour.AddOmegaSet()

	fused, conflict, err := alarm.CombineWithConflict(neighbour)
	if err != nil {
		panic(err)
	}
	best, _ := fused.BestMatch()

	fmt.Printf("conflict %.2f\n", conflict)
	fmt.Printf("bel(cat) %.4f\n", fused.BeliefOf([]string{"cat"}))
	fmt.Printf("pl(burglar) %.4f\n", fused.PlausibilityOf([]string{"burglar"}))
	fmt.Println("best", best)
	// Output:
	// conflict 0.48
	// bel(cat) 0.6154
	// pl(burglar) 0.3846
	// best cat
}
