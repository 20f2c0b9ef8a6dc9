package processor

import (
	"fmt"
	"log"
)

// DumpPlan logs the plan in concise form.
func DumpPlan(prefix string, r *Result) {
	for i, rec := range r.Records {
		lane := ""
		if l := r.Layout[i]; !l.Solo() {
			lane = fmt.Sprintf(" in lane %d/%d", l.Lane+1, l.GroupSize)
		}
		if rec.Sustained() {
			log.Printf("%s: %d [%.4f] Play %v sustain%s.", prefix, rec.StartTick, rec.StartSeconds, rec.Name(), lane)
			continue
		}
		log.Printf("%s: %d [%.4f] Play %v for %.4f seconds%s.", prefix, rec.StartTick, rec.StartSeconds, rec.Name(), rec.Duration, lane)
	}
	log.Printf("%s: %d notes.", prefix, len(r.Records))
}
