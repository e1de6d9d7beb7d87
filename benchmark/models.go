package main

import "time"

// Scenario is one request shape the benchmark repeats.
type Scenario struct {
	Name      string
	ImagePath string
}

type BenchResult struct {
	Scenario   string
	TextAfter  time.Duration
	Duration   time.Duration
	Caricature bool
	Fallback   bool
	Size       int64
	Err        error
}

type Agg struct {
	Count       int
	Failed      int
	Caricatures int
	Fallbacks   int
	TotalText   time.Duration
	Total       time.Duration
	TotalBytes  int64
}
