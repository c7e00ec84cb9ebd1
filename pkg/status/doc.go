/*
Package status tracks run progress and renders status lines for foldermove.

🎯 Purpose:
- Counts processed files against the total found by the counting pass
- Derives the floored completion percentage
- Formats the per-file status line and console file entries

🔄 Flow:
1. StartOperation receives the total from the counting pass
2. Advance is called once per transferred file and returns a Snapshot
3. FinishOperation logs the final counters

📝 Invariants:
- Processed grows by exactly one per Advance
- Processed never exceeds Total
- Percent is floor(Processed * 100 / Total), 0 when Total is 0

🔍 Example:

	tr := status.NewTracker(status.NewDefaultFileFormatter())
	tr.StartOperation(ctx, total)
	snap := tr.Advance(ctx, "a.txt")
	fmt.Println(snap.Percent)
*/
package status
