package app

import (
	"context"
	"strings"
	"testing"
)

func TestHandleCommand(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.ctl.Start(ctx)

	tests := []struct {
		line      string
		wantReply string
		wantQuit  bool
	}{
		{"", "", false},
		{"toggle", MsgActionFailed, false},
		{"search", "usage: search SYMBOL", false},
		{"search aapl", "", false},
		{"toggle", "", false},
		{"range 1y", "", false},
		{"range 10Y", "unknown chart range", false},
		{"select x", "invalid id: x", false},
		{"dance", "unknown command: dance", false},
		{"help", "commands:", false},
		{"quit", "", true},
	}
	for _, tt := range tests {
		reply, quit := h.ctl.HandleCommand(ctx, tt.line)
		if !strings.Contains(reply, tt.wantReply) || (tt.wantReply == "" && reply != "") {
			t.Errorf("%q: expected reply containing %q, got %q", tt.line, tt.wantReply, reply)
		}
		if quit != tt.wantQuit {
			t.Errorf("%q: expected quit=%v", tt.line, tt.wantQuit)
		}
	}

	snap := h.ctl.Store().Snapshot()
	if len(snap.WatchList) != 1 || snap.WatchList[0].Symbol != "AAPL" {
		t.Errorf("expected AAPL added by toggle, got %+v", snap.WatchList)
	}
	if snap.ChartsData == nil || snap.ChartsData.Range != "1Y" {
		t.Errorf("expected 1Y chart, got %+v", snap.ChartsData)
	}
}
