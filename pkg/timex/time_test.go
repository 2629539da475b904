package timex

import (
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// Pin a fixed instant
	// 固定一个时间点
	now := time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}
	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}
	if tt.UnixMicro() != now.UnixMicro() {
		t.Errorf("UnixMicro() = %v, want %v", tt.UnixMicro(), now.UnixMicro())
	}
	if tt.UnixNano() != now.UnixNano() {
		t.Errorf("UnixNano() = %v, want %v", tt.UnixNano(), now.UnixNano())
	}

	// The value must stay pinned rather than track the wall clock
	// 值必须保持固定而不是跟随系统时钟
	time.Sleep(10 * time.Millisecond)
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() drifted after sleep: got %v, want %v", tt.Unix(), now.Unix())
	}
}
