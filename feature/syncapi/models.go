package syncapi

import (
	"github.com/doughepi/grain/core/ingest"
)

// SyncDirectoryRequest is the body of POST /sync/directory.
type SyncDirectoryRequest struct {
	Path       string   `json:"path"`
	Recursive  bool     `json:"recursive"`
	Extensions []string `json:"extensions,omitempty"`
}

// SyncResponse describes a finished pass.
type SyncResponse struct {
	PassID  string `json:"pass_id"`
	Summary string `json:"summary"`
	// Shared is set when the pass was started by an identical concurrent request.
	Shared bool               `json:"shared"`
	Errors []string           `json:"errors,omitempty"`
	Result *ingest.PassResult `json:"result"`
}

func newSyncResponse(result *ingest.PassResult, shared bool) *SyncResponse {
	resp := &SyncResponse{
		PassID:  result.PassID,
		Summary: result.Summary(),
		Shared:  shared,
		Result:  result,
	}
	if result.Fatal != nil {
		resp.Errors = append(resp.Errors, result.Fatal.Error())
	}
	for _, b := range result.FailedBatches() {
		if b.Err != nil {
			resp.Errors = append(resp.Errors, b.Err.Error())
		}
	}
	for _, ie := range result.ItemErrors {
		resp.Errors = append(resp.Errors, ie.Error())
	}
	return resp
}
