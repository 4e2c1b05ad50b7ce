package worker

import (
	"github.com/lgbarn/chess-rules-go/internal/hashing"
	"github.com/lgbarn/chess-rules-go/internal/replay"
)

// ReplayFunc returns a ProcessFunc that runs each script with opts. When
// detector is not nil, scripts ending in a position some other script
// already reached are marked as duplicates.
func ReplayFunc(opts replay.Options, detector *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		out := replay.Run(item.Script, opts)
		res := ProcessResult{Index: item.Index, Name: item.Script.Name, Outcome: out}
		if detector != nil {
			res.Duplicate = detector.CheckAndAdd(out.Signature)
		}
		return res
	}
}
