package hire

import (
	"testing"

	"majdoorsathi/models"
)

func TestPendingFilter(t *testing.T) {
	f := PendingFilter("u_req", "u_target")

	if f["requester.id"] != "u_req" {
		t.Fatalf("requester.id = %v", f["requester.id"])
	}
	if f["targetid"] != "u_target" {
		t.Fatalf("targetid = %v", f["targetid"])
	}
	if f["status"] != models.HirePending {
		t.Fatalf("status = %v, want %q", f["status"], models.HirePending)
	}
}
