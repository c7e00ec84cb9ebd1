/*
Package transfer implements the engine that copies or moves folder contents.

	+-------------+      +-------------+      +-------------+
	|   Request   | ---> |   Engine    | ---> |   Events    |
	| (mappings)  |      | count, walk |      | progress... |
	+-------------+      +------+------+      |   result    |
	                            |             +-------------+
	                     +------+------+
	                     |   fileops   |
	                     | copy / move |
	                     +-------------+

🎯 Purpose:
- Mirrors each source folder tree under its destination
- Copies or moves every file, one at a time, in walk order
- Reports progress as plain data events, never touching presentation state

🔄 Flow:
1. Resolve paths, reject mappings whose destination overlaps the source
2. Count pass: sum the files under every source that exists
3. Transfer pass: per mapping, mkdir the destination tree and transfer files
4. One Result ends the run: success with a count, or the first failure

⚡ Failure policy:
- No files anywhere: Result wraps ErrNoFiles
- First copy/move/mkdir/walk error: Result wraps a *TransferError, the run stops
- Context cancelled: Result wraps ErrCancelled, checked between files and mappings
- Files already transferred stay where they are

🔍 Example:

	eng, err := transfer.New(transfer.Options{})
	if err != nil {
		return err
	}
	req := transfer.NewRequest(transfer.OperationCopy, transfer.Mapping{Source: "/src", Destination: "/dst"})
	for ev := range eng.Execute(ctx, req) {
		if ev.Progress != nil {
			fmt.Println(ev.Progress.Percent, ev.Progress.Status)
			continue
		}
		fmt.Println(ev.Result.Success, ev.Result.Message)
	}
*/
package transfer
