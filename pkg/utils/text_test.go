package utils

import "testing"

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}

func TestContainsAny(t *testing.T) {
	kw := []string{"exam", "midterm", "期末"}
	if !ContainsAny("When is the MIDTERM held?", kw) {
		t.Error("case-insensitive match expected")
	}
	if !ContainsAny("期末考试怎么复习", kw) {
		t.Error("Chinese keyword match expected")
	}
	if ContainsAny("how does quicksort work", kw) {
		t.Error("no keyword should match")
	}
	if ContainsAny("anything", nil) {
		t.Error("empty keyword list never matches")
	}
}
