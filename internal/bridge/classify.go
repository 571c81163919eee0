package bridge

import (
	"github.com/vietddude/relayer/internal/core/domain"
	"github.com/vietddude/relayer/internal/grouping"
	"github.com/vietddude/relayer/internal/infra/rpc"
)

// classifyOutcome maps a submission error onto the transfer's next outcome:
// fatal call errors end the transfer terminally, everything else comes back
// instrumental and drives another round.
func classifyOutcome(t domain.BridgeTransfer, err error) grouping.Outcome[domain.BridgeTransfer] {
	if err == nil {
		return grouping.NewSuccess[domain.BridgeTransfer]()
	}
	if rpc.ClassifyError(err) == rpc.ActionFatal {
		return grouping.NewFailure(grouping.NewTerminal(t))
	}
	return grouping.NewFailure(grouping.NewInstrumental(t))
}
