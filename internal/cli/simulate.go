package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mascotd/internal/pet"
)

// simulateCmd previews the evolution table: a perfectly cared-for pet
// backdated to each interesting age, run through one engine step.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Preview evolution outcomes at each checkpoint age",
	Run: func(cmd *cobra.Command, args []string) {
		rules := pet.DefaultRules()
		now := time.Now().UTC()

		for _, days := range []int{0, 1, 3, 6} {
			p := pet.New(1, now)
			p.SetBornAt(now.AddDate(0, 0, -days))
			p.LastLoveDate = pet.ISODate(now)
			p.LastFeedDate = pet.ISODate(now)
			rules.ApplyDecay(p, now)
			fmt.Printf("day %d: form=%s checkpoint=%d score=%d\n",
				days, p.Form, p.LastCheckpoint, pet.CareScore(p.Vitals()))
		}
	},
}
