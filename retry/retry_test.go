// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package retry

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"zombiezen.com/go/log/testlog"
)

func TestImmediateSuccess(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	ncalls := 0
	f := func() error {
		ncalls++
		return nil
	}
	err := Do(ctx, "calling a function", constBackoff(0), f)
	if err != nil {
		t.Error("Do:", err)
	}
	if ncalls != 1 {
		t.Errorf("f called %d times; want 1 time", ncalls)
	}
}

func TestEventualSuccess(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	ncalls := 0
	f := func() error {
		ncalls++
		if ncalls < 3 {
			return errors.New("bork")
		}
		return nil
	}
	err := Do(ctx, "calling a function", constBackoff(0), f)
	if err != nil {
		t.Error("Do:", err)
	}
	if ncalls != 3 {
		t.Errorf("f called %d times; want 3 times", ncalls)
	}
}

func TestCancellation(t *testing.T) {
	t.Run("CanceledBeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testlog.WithTB(context.Background(), t))
		cancel()
		ncalls := 0
		want := errors.New("bork")
		f := func() error {
			ncalls++
			return want
		}
		got := Do(ctx, "calling a function", constBackoff(0), f)
		if !errors.Is(got, want) {
			t.Errorf("Do = %v; want %v", got, want)
		}
		if ncalls != 1 {
			t.Errorf("f called %d times; want 1 time", ncalls)
		}
	})

	t.Run("CanceledDuringFirstRun", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testlog.WithTB(context.Background(), t))
		ncalls := 0
		want := errors.New("bork")
		f := func() error {
			ncalls++
			cancel()
			return want
		}
		got := Do(ctx, "calling a function", constBackoff(time.Millisecond), f)
		if !errors.Is(got, want) {
			t.Errorf("Do = %v; want %v", got, want)
		}
		if ncalls != 1 {
			t.Errorf("f called %d times; want 1 time", ncalls)
		}
	})

	t.Run("CanceledDuringSecondRun", func(t *testing.T) {
		ctx, cancel := context.WithCancel(testlog.WithTB(context.Background(), t))
		ncalls := 0
		want := errors.New("bork")
		f := func() error {
			ncalls++
			if ncalls >= 2 {
				cancel()
			}
			return want
		}
		got := Do(ctx, "calling a function", constBackoff(time.Millisecond), f)
		if !errors.Is(got, want) {
			t.Errorf("Do = %v; want %v", got, want)
		}
		if ncalls != 2 {
			t.Errorf("f called %d times; want 2 times", ncalls)
		}
	})
}

func TestExponential(t *testing.T) {
	tests := []struct {
		name     string
		strategy *Exponential
		want     []time.Duration
	}{
		{
			name:     "Defaults",
			strategy: &Exponential{},
			want: []time.Duration{
				100 * time.Millisecond,
				200 * time.Millisecond,
				400 * time.Millisecond,
			},
		},
		{
			name:     "Capped",
			strategy: &Exponential{Base: time.Second, Max: 3 * time.Second},
			want: []time.Duration{
				time.Second,
				2 * time.Second,
				3 * time.Second,
				3 * time.Second,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for i, want := range test.want {
				if got := test.strategy.Duration(); got != want {
					t.Errorf("Duration() #%d = %v; want %v", i+1, got, want)
				}
			}
		})
	}
}

type constBackoff time.Duration

func (b constBackoff) Duration() time.Duration {
	return time.Duration(b)
}

func TestMain(m *testing.M) {
	testlog.Main(nil)
	os.Exit(m.Run())
}
