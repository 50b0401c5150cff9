package scanner

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func strScanner(s string) *Scanner {
	scanr := NewScanner()
	scanr.Close([]byte(s))
	return scanr
}

func assertRead(t *testing.T, s *Scanner, xb byte, xerr error) {
	t.Helper()
	b, err := s.Read()
	if b != xb {
		t.Fatalf("Read: expected b = %q, got %q", xb, b)
	}
	if err != xerr {
		t.Fatalf("Read: expected err = %s, got %s", xerr, err)
	}
}

func assertPeek(t *testing.T, s *Scanner, xb byte, xerr error) {
	t.Helper()
	b, err := s.Peek()
	if b != xb {
		t.Fatalf("Peek: expected b = %q, got %q", xb, b)
	}
	if err != xerr {
		t.Fatalf("Peek: expected err = %s, got %s", xerr, err)
	}
}

func assertCurrentPos(t *testing.T, s *Scanner, line, col, offset int) {
	t.Helper()
	pos := s.CurrentPos()
	if pos.Line != line || pos.Col != col || pos.Offset != offset {
		t.Fatalf("CurrentPos: expected (%d, %d, %d) got (%d, %d, %d)", line, col, offset, pos.Line, pos.Col, pos.Offset)
	}
}

func assertDiscard(t *testing.T, s *Scanner, expected string) {
	t.Helper()
	if got := string(s.Discard()); got != expected {
		t.Fatalf("Discard: expected %q got %q", expected, got)
	}
}

func TestSimple(t *testing.T) {
	scanner := strScanner("bon\njour")
	assertRead(t, scanner, 'b', nil)
	assertRead(t, scanner, 'o', nil)
	assertCurrentPos(t, scanner, 0, 2, 2)
	assertPeek(t, scanner, 'n', nil)
	assertCurrentPos(t, scanner, 0, 2, 2)
	assertRead(t, scanner, 'n', nil)
	assertDiscard(t, scanner, "bon")
	assertRead(t, scanner, '\n', nil)
	assertCurrentPos(t, scanner, 1, 0, 4)

	assertRead(t, scanner, 'j', nil)
	assertRead(t, scanner, 'o', nil)
	assertRead(t, scanner, 'u', nil)
	assertRead(t, scanner, 'r', nil)
	assertCurrentPos(t, scanner, 1, 4, 8)
	assertRead(t, scanner, 0, io.EOF)
	assertPeek(t, scanner, 0, io.EOF)
	assertDiscard(t, scanner, "\njour")
	assertDiscard(t, scanner, "")
}

func TestSkipSpaceAndPeek(t *testing.T) {
	scanner := strScanner(" \t\r\n x  ")
	b, err := scanner.SkipSpaceAndPeek()
	if b != 'x' || err != nil {
		t.Fatalf("expected 'x', got %q, %v", b, err)
	}
	assertCurrentPos(t, scanner, 1, 1, 5)
	assertRead(t, scanner, 'x', nil)
	if _, err := scanner.SkipSpaceAndPeek(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
	assertDiscard(t, scanner, " \t\r\n x  ")
}

func TestUTF8Columns(t *testing.T) {
	scanner := strScanner("é!")
	assertRead(t, scanner, 0xC3, nil)
	assertRead(t, scanner, 0xA9, nil)
	assertCurrentPos(t, scanner, 0, 1, 2)
}

func TestAppendAfterClose(t *testing.T) {
	scanner := strScanner("x")
	if err := scanner.Append([]byte("y")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := scanner.Close(nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if !scanner.Closed() {
		t.Fatal("expected scanner to be closed")
	}
	assertRead(t, scanner, 'x', nil)
	assertRead(t, scanner, 0, io.EOF)
}

// TestDiscardLeavesUnreadText checks that discarding a token does not move
// the rest of the buffer, so emitting n tokens from one chunk stays linear.
func TestDiscardLeavesUnreadText(t *testing.T) {
	chunk := bytes.Repeat([]byte("1,"), 1<<19)
	scanner := NewScanner()
	scanner.Close(chunk)
	first := &scanner.buf[0]
	for i := 0; i < 1000; i++ {
		assertRead(t, scanner, '1', nil)
		assertRead(t, scanner, ',', nil)
		assertDiscard(t, scanner, "1,")
	}
	if &scanner.buf[0] != first {
		t.Fatal("Discard reallocated the buffer")
	}
	if scanner.start != 2000 || scanner.currentIndex != 2000 {
		t.Fatalf("unexpected offsets %d, %d", scanner.start, scanner.currentIndex)
	}
}

func TestAppendCompacts(t *testing.T) {
	scanner := NewScanner()
	scanner.Append([]byte("abcd"))
	for i := 0; i < 1000; i++ {
		if err := scanner.Append([]byte("abcd")); err != nil {
			t.Fatal(err)
		}
		for _, b := range []byte("abcd") {
			assertRead(t, scanner, b, nil)
		}
		assertDiscard(t, scanner, "abcd")
		if kept := len(scanner.buf) - scanner.start; kept != 4 {
			t.Fatalf("round %d: expected 4 bytes kept, got %d", i, kept)
		}
	}
	if cap(scanner.buf) > 64 {
		t.Fatalf("buffer grew to %d bytes", cap(scanner.buf))
	}
}

// TestBlockingRead checks that a consumer waits for data and that Wait
// returns once the consumer has drained what was appended.
func TestBlockingRead(t *testing.T) {
	scanner := NewScanner()
	got := make(chan byte)
	go func() {
		defer close(got)
		for {
			b, err := scanner.Read()
			if err != nil {
				scanner.Stop(nil)
				return
			}
			got <- b
		}
	}()

	select {
	case b := <-got:
		t.Fatalf("read %q before any data was appended", b)
	case <-time.After(10 * time.Millisecond):
	}

	if err := scanner.Append([]byte("ab")); err != nil {
		t.Fatal(err)
	}
	if b := <-got; b != 'a' {
		t.Fatalf("expected 'a', got %q", b)
	}
	if b := <-got; b != 'b' {
		t.Fatalf("expected 'b', got %q", b)
	}
	if err := scanner.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !scanner.Starved() {
		t.Fatal("expected consumer to be starved")
	}

	scanner.Close([]byte("c"))
	if b := <-got; b != 'c' {
		t.Fatalf("expected 'c', got %q", b)
	}
	if _, ok := <-got; ok {
		t.Fatal("expected consumer to stop")
	}
	if err := scanner.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if stopped, _ := scanner.Stopped(); !stopped {
		t.Fatal("expected consumer to be stopped")
	}
}

func TestStopWithError(t *testing.T) {
	scanner := NewScanner()
	errBoom := errors.New("boom")
	done := make(chan error)
	go func() { done <- scanner.Wait() }()
	scanner.Stop(errBoom)
	if err := <-done; err != errBoom {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestCharUtil(t *testing.T) {
	for _, b := range []byte(" \t\r\n") {
		if !IsSpace(b) {
			t.Errorf("%q should be space", b)
		}
	}
	if IsSpace(byte('\f')) {
		t.Error("form feed is not JSON whitespace")
	}
	for _, b := range []byte("09afAF") {
		if !IsHexDigit(b) {
			t.Errorf("%q should be hex", b)
		}
	}
	if IsHexDigit(byte('g')) || IsNonZeroDigit(byte('0')) {
		t.Error("unexpected class match")
	}
	if !IsNumberStart(byte('.')) || !IsNumberStart(byte('-')) || IsNumberStart(byte('+')) {
		t.Error("unexpected number start")
	}
}
