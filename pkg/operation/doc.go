/*
Package operation sits between a caller and the transfer engine.

	+-------------+
	|   Caller    |
	| (CLI loop)  |
	+------+------+
	       |
	+------+------+
	|   Runner    |
	| (one at a   |
	|    time)    |
	+------+------+
	       |
	+------+------+
	|  Executor   |
	| (engine)    |
	+-------------+

🎯 Purpose:
- Runs a request on a background goroutine so the caller stays responsive
- Refuses a second request while one is in flight (ErrBusy)
- Forwards plain data events; the caller does all rendering

🔍 Example:

	runner := operation.NewRunner(&logger, engine)
	res, err := runner.Run(ctx, req, func(p transfer.Progress) {
		bar.Add(p.Percent - bar.Current)
	})
*/
package operation
